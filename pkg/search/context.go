package search

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/limaJavier/hstt/pkg/move"
	"github.com/samber/lo"
)

const (
	outcomeInfeasible = "infeasible"
	outcomeAccepted   = "accepted"
	outcomeRejected   = "rejected"
)

type MoveStats struct {
	Tried      int
	Infeasible int
	Accepted   int
	Rejected   int
}

// SearchContext carries everything one search run owns: configuration, random source,
// move generators, deadline, statistics, logger and metrics
type SearchContext[S Solution[S]] struct {
	config   Config
	rng      *rand.Rand
	logger   *slog.Logger
	metrics  *Metrics
	clock    func() time.Time
	deadline time.Time

	current       S
	best          S
	neighborhoods []Neighborhood
	generators    []move.Generator
	dims          [][2]int
	weights       []float64
	cursor        int

	trace      *monitor.Trace
	iterations int
	restores   int
	stats      map[string]*MoveStats
}

func newSearchContext[S Solution[S]](soln S, config Config, options options) (*SearchContext[S], error) {
	ctx := &SearchContext[S]{
		config:  config,
		rng:     rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15)),
		logger:  options.logger,
		metrics: options.metrics,
		clock:   options.clock,
		trace:   monitor.NewTrace(),
		stats:   make(map[string]*MoveStats),
	}
	if config.TimeLimit > 0 {
		ctx.deadline = ctx.clock().Add(time.Duration(config.TimeLimit * float64(time.Second)))
	}

	ctx.neighborhoods = soln.Neighborhoods()
	if len(ctx.neighborhoods) == 0 {
		return nil, fmt.Errorf("solution has no neighbourhoods to search")
	}

	//** Generators, one per neighbourhood
	for _, neighborhood := range ctx.neighborhoods {
		n, m := neighborhood.Dims()
		var generator move.Generator
		var err error
		if m == 0 {
			generator, err = move.NewSwap(n, config.Ceiling, ctx.rng)
		} else {
			generator, err = move.NewRealloc(n, m, config.Ceiling, ctx.rng)
		}
		if err != nil {
			return nil, fmt.Errorf("cannot build generator for neighbourhood %v: %w", neighborhood.Name(), err)
		}
		ctx.generators = append(ctx.generators, generator)
		ctx.dims = append(ctx.dims, [2]int{n, m})
		ctx.stats[neighborhood.Name()] = &MoveStats{}
	}

	//** Weights, round-robin when none is configured
	if len(config.Weights) > 0 {
		ctx.weights = lo.Map(ctx.neighborhoods, func(neighborhood Neighborhood, _ int) float64 {
			if weight, ok := config.Weights[neighborhood.Name()]; ok {
				return weight
			}
			return 1
		})
		if lo.Sum(ctx.weights) == 0 {
			return nil, fmt.Errorf("every neighbourhood has weight zero")
		}
	}

	ctx.bind(soln)
	ctx.best = soln.Clone()
	return ctx, nil
}

// bind makes soln the current solution. Its neighbourhoods must have the dimensions the
// generators were built for
func (ctx *SearchContext[S]) bind(soln S) {
	neighborhoods := soln.Neighborhoods()
	if len(neighborhoods) != len(ctx.generators) {
		log.Panicf("solution offers %d neighbourhoods, the search drives %d", len(neighborhoods), len(ctx.generators))
	}
	for i, neighborhood := range neighborhoods {
		if n, m := neighborhood.Dims(); [2]int{n, m} != ctx.dims[i] {
			log.Panicf("neighbourhood %v changed dimensions from %v to %v", neighborhood.Name(), ctx.dims[i], [2]int{n, m})
		}
	}
	ctx.current = soln
	ctx.neighborhoods = neighborhoods
}

func (ctx *SearchContext[S]) Current() S { return ctx.current }

func (ctx *SearchContext[S]) Best() S { return ctx.best }

func (ctx *SearchContext[S]) Rng() *rand.Rand { return ctx.rng }

// Expired reports whether the time budget is spent
func (ctx *SearchContext[S]) Expired() bool {
	return !ctx.deadline.IsZero() && !ctx.clock().Before(ctx.deadline)
}

func (ctx *SearchContext[S]) pick() int {
	if ctx.weights == nil {
		i := ctx.cursor
		ctx.cursor = (ctx.cursor + 1) % len(ctx.neighborhoods)
		return i
	}
	target := ctx.rng.Float64() * lo.Sum(ctx.weights)
	for i, weight := range ctx.weights {
		if target < weight {
			return i
		}
		target -= weight
	}
	// Rounding left target at the total
	return slices.IndexFunc(ctx.weights, func(weight float64) bool { return weight > 0 })
}

func (ctx *SearchContext[S]) draw(i int) move.Move {
	generator := ctx.generators[i]
	if !generator.HasMove() {
		generator.Restart()
	}
	return generator.GetMove()
}

// step draws a move from neighbourhood i, applies it and keeps it when accept agrees.
// It returns whether the move was feasible and whether it was kept
func (ctx *SearchContext[S]) step(i int, accept func(before, after cost.Cost) bool) (feasible, accepted bool) {
	ctx.iterations++
	neighborhood := ctx.neighborhoods[i]
	stats := ctx.stats[neighborhood.Name()]
	stats.Tried++

	mv := ctx.draw(i)
	before := ctx.current.Cost()

	debug := ctx.logger.Enabled(context.Background(), slog.LevelDebug)
	if debug {
		ctx.current.Root().BeginTrace(ctx.trace)
	}
	feasible = neighborhood.Apply(mv)
	if debug {
		ctx.current.Root().EndTrace(ctx.trace)
	}

	if !feasible {
		stats.Infeasible++
		ctx.record(neighborhood.Name(), outcomeInfeasible)
		return false, false
	}

	after := ctx.current.Cost()
	if debug {
		ctx.logger.Debug("move",
			"neighborhood", neighborhood.Name(),
			"move", mv.String(),
			"before", before.String(),
			"after", after.String(),
			"touched", ctx.trace.Len(),
			"worsened", len(ctx.trace.Worsened()))
	}

	if accept(before, after) {
		stats.Accepted++
		ctx.record(neighborhood.Name(), outcomeAccepted)
		return true, true
	}
	neighborhood.Undo()
	stats.Rejected++
	ctx.record(neighborhood.Name(), outcomeRejected)
	return true, false
}

func (ctx *SearchContext[S]) record(neighborhood, outcome string) {
	if ctx.metrics != nil {
		ctx.metrics.RecordMove(neighborhood, outcome)
	}
}

// updateBest clones the current solution into best when it is strictly better
func (ctx *SearchContext[S]) updateBest() bool {
	if !cost.IsBetter(ctx.current.Cost(), ctx.best.Cost()) {
		return false
	}
	ctx.best = ctx.current.Clone()
	ctx.logger.Debug("new best", "cost", ctx.best.Cost().String(), "iteration", ctx.iterations)
	if ctx.metrics != nil {
		ctx.metrics.RecordCost("best", ctx.best.Cost())
	}
	return true
}

// restoreBest continues the search from a clone of the best solution
func (ctx *SearchContext[S]) restoreBest() {
	ctx.bind(ctx.best.Clone())
	ctx.restores++
	if ctx.metrics != nil {
		ctx.metrics.Restores.Inc()
	}
}

// perturb applies strength feasible moves regardless of their cost. Neighbourhood i is used
// throughout, or a random one per move when i is negative
func (ctx *SearchContext[S]) perturb(strength, i int) {
	applied, attempts := 0, 0
	for applied < strength && attempts < strength*100 {
		attempts++
		k := i
		if k < 0 {
			k = ctx.rng.IntN(len(ctx.neighborhoods))
		}
		if feasible, _ := ctx.step(k, func(_, _ cost.Cost) bool { return true }); feasible {
			applied++
		}
	}
}

func (ctx *SearchContext[S]) publishCurrent() {
	if ctx.metrics != nil {
		ctx.metrics.RecordCost("current", ctx.current.Cost())
	}
}
