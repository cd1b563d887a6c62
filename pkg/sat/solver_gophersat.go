package sat

import (
	"fmt"

	gophersat "github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

// gophersatSolver solves in-process, so no external executable nor config.json is needed
type gophersatSolver struct{}

func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(sat SAT) (SATSolution, error) {
	if len(sat.Clauses) == 0 {
		return SATSolution{}, nil
	}

	cnf := lo.Map(sat.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})

	problem := gophersat.ParseSlice(cnf)
	engine := gophersat.New(problem)

	switch status := engine.Solve(); status {
	case gophersat.Unsat:
		return nil, nil
	case gophersat.Sat:
	default:
		return nil, fmt.Errorf("gophersat ended with status %v", status)
	}

	model := engine.Model()
	solution := make(SATSolution, len(model))
	for i, value := range model {
		literal := int64(i + 1)
		if !value {
			literal = -literal
		}
		solution[i] = literal
	}
	return solution, nil
}
