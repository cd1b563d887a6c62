package monitor

import (
	"fmt"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/samber/lo"
)

// CostFunction turns the multiset of a monitor's deviations into an unweighted cost
type CostFunction struct {
	Name string
	// Linear functions are computed from the running sum without expanding the multiset
	Linear bool
	Eval   func(deviations []int) uint64
}

var (
	Linear = CostFunction{
		Name:   "linear",
		Linear: true,
		Eval: func(deviations []int) uint64 {
			return uint64(lo.Sum(deviations))
		},
	}
	Quadratic = CostFunction{
		Name: "quadratic",
		Eval: func(deviations []int) uint64 {
			return uint64(lo.SumBy(deviations, func(deviation int) int { return deviation * deviation }))
		},
	}
	Step = CostFunction{
		Name: "step",
		Eval: func(deviations []int) uint64 {
			return uint64(lo.CountBy(deviations, func(deviation int) bool { return deviation > 0 }))
		},
	}
	// One unit per distinct magnitude present
	Distinct = CostFunction{
		Name: "distinct",
		Eval: func(deviations []int) uint64 {
			return uint64(len(lo.Uniq(deviations)))
		},
	}
)

func LookupCostFunction(name string) (CostFunction, error) {
	function, ok := lo.Find([]CostFunction{Linear, Quadratic, Step, Distinct}, func(function CostFunction) bool {
		return function.Name == name
	})
	if !ok {
		return CostFunction{}, fmt.Errorf("unknown cost function \"%v\"", name)
	}
	return function, nil
}

// Constraint is the immutable description shared by all monitors of one constraint instance
type Constraint struct {
	Name     string
	Kind     Kind
	Required bool // Required constraints bill hard cost
	Weight   uint64
	Function CostFunction
}

// Cost weighs the published deviations of dev
func (constraint *Constraint) Cost(dev *DevMonitor) cost.Cost {
	var value uint64
	if constraint.Function.Eval == nil || constraint.Function.Linear {
		value = uint64(dev.Sum())
	} else {
		value = constraint.Function.Eval(dev.Values())
	}
	value *= constraint.Weight

	if constraint.Required {
		return cost.Hard(value)
	}
	return cost.Soft(value)
}
