package model

import (
	"fmt"
	"log"
	"slices"

	"github.com/limaJavier/hstt/pkg/sat"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// DefaultMaxVariables bounds the size of the SAT encoding tried by Construct
const DefaultMaxVariables = 1 << 22

type unassignableError struct {
	unmatched int
}

func (err unassignableError) Error() string {
	return fmt.Sprintf("%d meets cannot be assigned a room", err.unmatched)
}

// Construct gives every unassigned meet a start by solving "one start per meet, no clash
// on preassigned resources, no required unavailable time" as SAT, then gives rooms to the
// meets that need one. Meets keep no time when the encoding is too large or unsatisfiable;
// the search repairs them
func (soln *Solution) Construct(solver sat.SATSolver, maxVariables int) error {
	meets := lo.Range(len(soln.meets))
	times := len(soln.instance.Times)

	if variables := len(meets) * times; variables > maxVariables {
		log.Printf("skipping SAT construction: %d variables exceed the limit of %d", variables, maxVariables)
	} else if err := soln.assignTimes(solver, meets); err != nil {
		return err
	}

	soln.AssignRooms()
	return nil
}

func (soln *Solution) assignTimes(solver sat.SATSolver, meets []int) error {
	times := len(soln.instance.Times)
	state := constraintState{
		soln:    soln,
		indexer: newIndexer(times),
		meets:   meets,
		times:   times,
	}

	// Constraints functions
	constraints := []func(state constraintState) [][]int64{
		completenessConstraints,
		uniquenessConstraints,
		clashConstraints,
		unavailabilityConstraints,
	}

	satInstance := buildSat(uint64(len(soln.meets)*times), constraints, state)

	solution, err := solver.Solve(satInstance)
	if err != nil {
		return fmt.Errorf("cannot solve initial assignment: %w", err)
	} else if solution == nil {
		log.Printf("initial assignment is unsatisfiable: meets are left unassigned")
		return nil
	}

	for variable := range solution.Positives() {
		meet, start := state.indexer.Attributes(variable)
		if meet < len(soln.meets) && soln.CheckAssignTime(meet, start) {
			soln.AssignTime(meet, start)
		}
	}
	return nil
}

func buildSat(variables uint64, constraints []func(state constraintState) [][]int64, state constraintState) sat.SAT {
	satInstance := sat.SAT{
		Variables: variables,
		Clauses:   [][]int64{},
	}

	constraintsChannel := make(chan [][]int64) // Channel to collect constraints

	// Execute constraints functions on different goroutines to improve performance
	for _, constraint := range constraints {
		go func(constraint func(state constraintState) [][]int64) {
			constraintsChannel <- constraint(state)
		}(constraint)
	}

	// Collect generated constraints
	collectedConstraints := 0
	for clauses := range constraintsChannel {
		satInstance.Clauses = append(satInstance.Clauses, clauses...)

		// Check whether all constraints have been collected to properly close the channel
		if collectedConstraints++; collectedConstraints == len(constraints) {
			close(constraintsChannel)
		}
	}

	// Goroutines finish in any order
	slices.SortStableFunc(satInstance.Clauses, func(a, b []int64) int { return slices.Compare(a, b) })
	return satInstance
}

// AssignRooms gives a free candidate room to every timed meet that needs one and has none,
// matching meets to rooms start by start. It returns how many such meets are left roomless
func (soln *Solution) AssignRooms() int {
	pending := lo.Filter(lo.Range(len(soln.meets)), func(m int, _ int) bool {
		meet := soln.meets[m]
		return meet.Assigned() && meet.Room < 0 && len(soln.instance.Events[meet.Event].Rooms) > 0
	})
	byStart := lo.GroupBy(pending, func(m int) int { return soln.meets[m].Start })

	unmatched := 0
	starts := lo.Keys(byStart)
	slices.Sort(starts)
	for _, start := range starts {
		meets := byStart[start]
		rooms := lo.Uniq(lo.FlatMap(meets, func(m int, _ int) []int {
			return soln.instance.Events[soln.meets[m].Event].Rooms
		}))
		slices.Sort(rooms)

		assignments, err := assignRooms(meets, rooms, func(m, room int) bool {
			meet := soln.meets[m]
			return slices.Contains(soln.instance.Events[meet.Event].Rooms, room) &&
				lo.EveryBy(lo.RangeFrom(meet.Start, meet.Duration), func(time int) bool { return soln.counts[room][time] == 0 })
		})
		if unassignable, ok := err.(unassignableError); ok {
			log.Printf("cannot assign rooms at time %v: %v", soln.instance.Times[start], err)
			unmatched += unassignable.unmatched
		} else if err != nil {
			log.Panicf("room matching failed: %v", err)
		}

		for _, assignment := range assignments {
			soln.AssignRoom(assignment[0], assignment[1])
		}
	}
	return unmatched
}

// assignRooms finds a largest matching of meets to rooms. A partial matching comes with an
// unassignableError
func assignRooms(meets []int, rooms []int, fits func(meet, room int) bool) ([][2]int, error) {
	if len(meets) == 0 || len(rooms) == 0 {
		if len(meets) > 0 {
			return nil, unassignableError{unmatched: len(meets)}
		}
		return nil, nil
	}

	// Build neighbors predicate based on fits
	neighbors := func(meetAny any, roomAny any) (bool, error) {
		return fits(meetAny.(int), roomAny.(int)), nil
	}

	// Transform meets and rooms to slices of any
	meetsAny, roomsAny := lo.Map(meets, func(meet int, _ int) any { return meet }), lo.Map(rooms, func(room int, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(meetsAny, roomsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	assignments := make([][2]int, 0, len(matching))
	for _, edge := range matching {
		meetIndex, roomIndex := edge.Node1, edge.Node2-len(meets)
		assignments = append(assignments, [2]int{meets[meetIndex], rooms[roomIndex]})
	}
	slices.SortFunc(assignments, func(a, b [2]int) int { return a[0] - b[0] })

	// Check the matching is a maximum one
	if len(matching) < len(meets) {
		return assignments, unassignableError{unmatched: len(meets) - len(matching)}
	}
	return assignments, nil
}
