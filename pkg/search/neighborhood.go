package search

import (
	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/limaJavier/hstt/pkg/move"
)

// Neighborhood is a family of moves over a solution
type Neighborhood interface {
	Name() string
	// Sizes of the move domains. m == 0 selects unordered pairs over n
	Dims() (n, m int)
	// Applies the move if it is feasible and reports whether it did
	Apply(mv move.Move) bool
	// Reverts the last successful Apply
	Undo()
}

// Solution is what the search drives. Neighborhoods must be bound to the receiver, so
// that a clone yields neighbourhoods over the clone
type Solution[S any] interface {
	Cost() cost.Cost
	Root() *monitor.GroupMonitor
	Clone() S
	Neighborhoods() []Neighborhood
}
