package search

import (
	"slices"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/limaJavier/hstt/pkg/move"
)

// fakeSolution is a vector of values that should match a target: a mismatch at an even
// position costs one hard unit, at an odd one a soft unit
type fakeSolution struct {
	values []int
	target []int
	domain int
	root   *monitor.GroupMonitor
}

func newFakeSolution(values, target []int, domain int) *fakeSolution {
	return &fakeSolution{
		values: values,
		target: target,
		domain: domain,
		root:   monitor.NewTree().NewGroup("fake"),
	}
}

func (soln *fakeSolution) Cost() cost.Cost {
	var c cost.Cost
	for i, value := range soln.values {
		if value == soln.target[i] {
			continue
		}
		if i%2 == 0 {
			c = c.Add(cost.Hard(1))
		} else {
			c = c.Add(cost.Soft(1))
		}
	}
	return c
}

func (soln *fakeSolution) Root() *monitor.GroupMonitor { return soln.root }

func (soln *fakeSolution) Clone() *fakeSolution {
	return &fakeSolution{
		values: slices.Clone(soln.values),
		target: soln.target,
		domain: soln.domain,
		root:   monitor.NewTree().NewGroup("fake"),
	}
}

func (soln *fakeSolution) Neighborhoods() []Neighborhood {
	return []Neighborhood{&fakeReassign{soln: soln}, &fakeSwap{soln: soln}}
}

type fakeReassign struct {
	soln     *fakeSolution
	position int
	previous int
}

func (n *fakeReassign) Name() string     { return "reassign" }
func (n *fakeReassign) Dims() (int, int) { return len(n.soln.values), n.soln.domain }

func (n *fakeReassign) Apply(mv move.Move) bool {
	if n.soln.values[mv.I] == mv.J {
		return false
	}
	n.position, n.previous = mv.I, n.soln.values[mv.I]
	n.soln.values[mv.I] = mv.J
	return true
}

func (n *fakeReassign) Undo() { n.soln.values[n.position] = n.previous }

type fakeSwap struct {
	soln *fakeSolution
	last move.Move
}

func (n *fakeSwap) Name() string     { return "swap" }
func (n *fakeSwap) Dims() (int, int) { return len(n.soln.values), 0 }

func (n *fakeSwap) Apply(mv move.Move) bool {
	values := n.soln.values
	if values[mv.I] == values[mv.J] {
		return false
	}
	values[mv.I], values[mv.J] = values[mv.J], values[mv.I]
	n.last = mv
	return true
}

func (n *fakeSwap) Undo() {
	values := n.soln.values
	values[n.last.I], values[n.last.J] = values[n.last.J], values[n.last.I]
}
