package search

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/hstt/pkg/cost"
)

type options struct {
	logger  *slog.Logger
	metrics *Metrics
	clock   func() time.Time
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithMetrics(metrics *Metrics) Option {
	return func(o *options) { o.metrics = metrics }
}

// WithClock replaces the wall clock used for the time limit
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

type Report struct {
	RunID      string
	Mode       Mode
	Initial    cost.Cost
	Final      cost.Cost
	Iterations int
	Restores   int
	Moves      map[string]MoveStats
	Elapsed    time.Duration
	TimedOut   bool
}

// Run searches from soln with the configured mode and returns the best solution found,
// which may be soln itself
func Run[S Solution[S]](soln S, config Config, opts ...Option) (S, Report, error) {
	settings := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&settings)
	}
	if err := config.Validate(); err != nil {
		return soln, Report{}, fmt.Errorf("invalid search configuration: %w", err)
	}

	runID := uuid.NewString()
	settings.logger = settings.logger.With("run", runID, "mode", string(config.Mode))
	started := settings.clock()

	ctx, err := newSearchContext(soln, config, settings)
	if err != nil {
		return soln, Report{}, err
	}

	initial := soln.Cost()
	ctx.logger.Info("search started", "cost", initial.String(), "seed", config.Seed, "neighborhoods", len(ctx.neighborhoods))
	ctx.publishCurrent()
	if ctx.metrics != nil {
		ctx.metrics.RecordCost("best", initial)
	}

	switch config.Mode {
	case ModeDescent:
		ctx.descent(config.DescentMax, 0)
	case ModeSA:
		ctx.anneal()
	case ModeILS:
		ctx.iteratedLocalSearch()
	case ModeVNS:
		ctx.variableNeighborhoodSearch()
	}

	report := Report{
		RunID:      runID,
		Mode:       config.Mode,
		Initial:    initial,
		Final:      ctx.current.Cost(),
		Iterations: ctx.iterations,
		Restores:   ctx.restores,
		Moves:      make(map[string]MoveStats, len(ctx.stats)),
		Elapsed:    settings.clock().Sub(started),
		TimedOut:   ctx.Expired(),
	}
	for name, stats := range ctx.stats {
		report.Moves[name] = *stats
	}
	ctx.publishCurrent()
	ctx.logger.Info("search finished",
		"initial", initial.String(),
		"final", report.Final.String(),
		"iterations", report.Iterations,
		"restores", report.Restores,
		"elapsed", report.Elapsed.String(),
		"timedOut", report.TimedOut)

	return ctx.current, report, nil
}
