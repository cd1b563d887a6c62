package model

import (
	"slices"

	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/samber/lo"
)

// constraintState is the read-only view shared by the clause generators
type constraintState struct {
	soln    *Solution
	indexer indexer
	meets   []int // Meets being scheduled
	times   int
}

func (state constraintState) starts(meet int) []int {
	m := state.soln.meets[meet]
	if m.Assigned() {
		return []int{m.Start}
	}
	return lo.Filter(lo.Range(state.times), func(start int, _ int) bool { return state.soln.fits(m, start) })
}

// Every meet starts at least once
func completenessConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0, len(state.meets))
	for _, meet := range state.meets {
		clauses = append(clauses, lo.Map(state.starts(meet), func(start int, _ int) int64 {
			return state.indexer.Index(meet, start)
		}))
	}
	return clauses
}

// Every meet starts at most once
func uniquenessConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for _, meet := range state.meets {
		starts := state.starts(meet)
		for i := range len(starts) - 1 {
			for j := i + 1; j < len(starts); j++ {
				clauses = append(clauses, []int64{-state.indexer.Index(meet, starts[i]), -state.indexer.Index(meet, starts[j])})
			}
		}
	}
	return clauses
}

// Two meets sharing a preassigned resource never overlap
func clashConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for i := range len(state.meets) - 1 {
		meet1 := state.soln.meets[state.meets[i]]
		resources1 := state.soln.instance.Events[meet1.Event].Resources
		for j := i + 1; j < len(state.meets); j++ {
			meet2 := state.soln.meets[state.meets[j]]
			resources2 := state.soln.instance.Events[meet2.Event].Resources
			// Fixed meets are not questioned
			if meet1.Assigned() && meet2.Assigned() {
				continue
			}
			if !lo.SomeBy(resources1, func(resource int) bool { return slices.Contains(resources2, resource) }) {
				continue
			}

			for _, start1 := range state.starts(state.meets[i]) {
				for _, start2 := range state.starts(state.meets[j]) {
					// Overlap of [start1, start1+d1) and [start2, start2+d2)
					if start1 < start2+meet2.Duration && start2 < start1+meet1.Duration {
						clauses = append(clauses, []int64{
							-state.indexer.Index(state.meets[i], start1),
							-state.indexer.Index(state.meets[j], start2),
						})
					}
				}
			}
		}
	}
	return clauses
}

// No meet occupies a time its resources declare unavailable under a required constraint
func unavailabilityConstraints(state constraintState) [][]int64 {
	unavailable := make(map[int]map[int]bool) // Resource -> forbidden times
	for _, constraint := range state.soln.instance.Constraints {
		if constraint.Kind != monitor.KindAvoidUnavailableTimes || !constraint.Required {
			continue
		}
		for _, resource := range constraint.Resources {
			if _, ok := unavailable[resource]; !ok {
				unavailable[resource] = make(map[int]bool)
			}
			for _, time := range constraint.Times {
				unavailable[resource][time] = true
			}
		}
	}

	clauses := make([][]int64, 0)
	for _, meet := range state.meets {
		m := state.soln.meets[meet]
		if m.Assigned() {
			continue
		}
		resources := state.soln.instance.Events[m.Event].Resources
		for _, start := range state.starts(meet) {
			if lo.SomeBy(lo.RangeFrom(start, m.Duration), func(time int) bool {
				return lo.SomeBy(resources, func(resource int) bool { return unavailable[resource][time] })
			}) {
				clauses = append(clauses, []int64{-state.indexer.Index(meet, start)})
			}
		}
	}
	return clauses
}
