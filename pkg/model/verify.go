package model

import (
	"log"
	"slices"
)

// Verify rebuilds the solution from its meets alone and checks that occupancy and every
// per-kind cost agree with the incrementally maintained ones
func (soln *Solution) Verify() bool {
	fresh := newSolution(soln.instance, slices.Clone(soln.meets))

	for resource := range soln.counts {
		if !slices.Equal(soln.counts[resource], fresh.counts[resource]) {
			log.Printf("occupancy of resource \"%v\" differs from a fresh build", soln.instance.Resources[resource].Name)
			return false
		}
	}

	if fresh.Cost() != soln.Cost() {
		log.Printf("cost %v differs from a fresh build %v", soln.Cost(), fresh.Cost())
		return false
	}
	return slices.Equal(soln.CostByKind(), fresh.CostByKind())
}
