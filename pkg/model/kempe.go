package model

import (
	"log"
	"slices"

	"github.com/samber/lo"
)

// kempeChain collects the meets that must trade places when meet m moves from its start t1
// to t2: meets starting at t1 or t2 linked by shared resources, alternating between the two
// starts. The second result is false when some meet of the chain cannot fit at the other start
func (soln *Solution) kempeChain(m, t2 int) ([]int, bool) {
	t1 := soln.meets[m].Start
	chain := []int{m}
	inChain := map[int]bool{m: true}

	for i := 0; i < len(chain); i++ {
		current := soln.meets[chain[i]]
		other := t2
		if current.Start == t2 {
			other = t1
		}
		if !soln.fits(current, other) {
			return nil, false
		}
		resources := soln.meetResources(current)
		for candidate, meet := range soln.meets {
			if inChain[candidate] || meet.Start != other {
				continue
			}
			if lo.SomeBy(soln.meetResources(meet), func(resource int) bool { return slices.Contains(resources, resource) }) {
				inChain[candidate] = true
				chain = append(chain, candidate)
			}
		}
	}
	return chain, true
}

func (soln *Solution) CheckKempeMove(m, start int) bool {
	soln.checkMeet(m)
	meet := soln.meets[m]
	if !meet.Assigned() || meet.Start == start || !soln.fits(meet, start) {
		return false
	}
	_, ok := soln.kempeChain(m, start)
	return ok
}

// KempeMove moves meet m to start and every meet of its Kempe chain to the other start of the
// pair. It returns the moved meets with their previous starts
func (soln *Solution) KempeMove(m, start int) (meets []int, starts []int) {
	if !soln.CheckKempeMove(m, start) {
		log.Panicf("cannot apply a Kempe move of meet %d to time %d", m, start)
	}
	chain, _ := soln.kempeChain(m, start)
	t1 := soln.meets[m].Start

	previous := lo.Map(chain, func(meet int, _ int) int { return soln.meets[meet].Start })
	next := lo.Map(previous, func(previousStart int, _ int) int {
		if previousStart == t1 {
			return start
		}
		return t1
	})
	soln.setStarts(chain, next)
	return chain, previous
}

// setStarts moves assigned meets to new starts as one edit
func (soln *Solution) setStarts(meets []int, starts []int) {
	for _, m := range meets {
		soln.occupy(soln.meets[m], -1)
	}
	for i, m := range meets {
		soln.meets[m].Start = starts[i]
	}
	for _, m := range meets {
		soln.occupy(soln.meets[m], 1)
	}
	soln.flush()
}
