package search

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrambled() *fakeSolution {
	return newFakeSolution([]int{3, 2, 1, 0, 3, 2, 1, 0}, []int{0, 1, 2, 3, 0, 1, 2, 3}, 4)
}

func testConfig(mode Mode) Config {
	config := DefaultConfig()
	config.Mode = mode
	config.TimeLimit = 0
	config.DescentMax = 500
	config.SaMax = 50
	config.IlsMax = 20
	config.VnsMax = 20
	config.BlMax = 200
	config.Seed = 7
	return config
}

func TestModes(t *testing.T) {
	for _, mode := range Modes {
		t.Run(string(mode), func(t *testing.T) {
			//** Arrange
			soln := scrambled()
			initial := soln.Cost()

			//** Act
			result, report, err := Run(soln, testConfig(mode))

			//** Assert
			require.Nil(t, err)
			assert.False(t, cost.IsBetter(initial, result.Cost()), "%v worsened %v into %v", mode, initial, result.Cost())
			assert.Equal(t, initial, report.Initial)
			assert.Equal(t, result.Cost(), report.Final)
			assert.Equal(t, mode, report.Mode)
			assert.NotEmpty(t, report.RunID)
			assert.Positive(t, report.Iterations)
		})
	}
}

func TestDescentReachesOptimum(t *testing.T) {
	result, report, err := Run(scrambled(), testConfig(ModeDescent))

	require.Nil(t, err)
	assert.True(t, result.Cost().IsZero())
	assert.Zero(t, report.Restores)
}

func TestDescentNeverWorsens(t *testing.T) {
	//** Arrange
	soln := scrambled()
	settings := options{logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), clock: time.Now}
	ctx, err := newSearchContext(soln, testConfig(ModeDescent), settings)
	require.Nil(t, err)

	//** Act & Assert
	previous := soln.Cost()
	for range 200 {
		ctx.step(ctx.pick(), notWorse)
		assert.False(t, cost.IsBetter(previous, ctx.current.Cost()))
		previous = ctx.current.Cost()
	}
}

func TestIteratedLocalSearchRestoresBest(t *testing.T) {
	result, _, err := Run(scrambled(), testConfig(ModeILS))

	require.Nil(t, err)
	assert.True(t, result.Cost().IsZero())
}

func TestLocalOptimumOfEqualCostBecomesBest(t *testing.T) {
	//** Arrange
	soln := newFakeSolution([]int{0, 0, 0, 0}, []int{0, 0, 1, 1}, 4)
	ctx, err := newSearchContext(soln, testConfig(ModeILS), options{
		logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		clock:  time.Now,
	})
	require.Nil(t, err)
	start := ctx.Best().Cost()

	//** Act
	// Same cost (1, 1) from a different assignment
	ctx.current.values = []int{1, 0, 1, 0}
	improved := ctx.acceptLocalOptimum()

	//** Assert
	assert.False(t, improved)
	assert.Equal(t, start, ctx.Best().Cost())
	assert.Equal(t, []int{1, 0, 1, 0}, ctx.Best().values)
	assert.NotSame(t, ctx.Current(), ctx.Best())

	//** Act
	ctx.current.values = []int{2, 2, 2, 2}
	improved = ctx.acceptLocalOptimum()

	//** Assert
	assert.False(t, improved)
	assert.Equal(t, []int{1, 0, 1, 0}, ctx.Current().values, "a worse result goes back to the last accepted one")
	assert.Equal(t, 1, ctx.restores)

	//** Act
	ctx.current.values = []int{0, 0, 1, 0}
	improved = ctx.acceptLocalOptimum()

	//** Assert
	assert.True(t, improved)
	assert.Equal(t, cost.Soft(1), ctx.Best().Cost())
}

func TestTimeLimit(t *testing.T) {
	//** Arrange
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	config := testConfig(ModeSA)
	config.TimeLimit = 5

	//** Act
	_, report, err := Run(scrambled(), config, WithClock(clock))

	//** Assert
	require.Nil(t, err)
	assert.True(t, report.TimedOut)
	assert.Less(t, report.Iterations, 10)
}

func TestWeights(t *testing.T) {
	config := testConfig(ModeDescent)
	config.Weights = map[string]float64{"swap": 0}

	_, report, err := Run(scrambled(), config)

	require.Nil(t, err)
	assert.Zero(t, report.Moves["swap"].Tried)
	assert.Positive(t, report.Moves["reassign"].Tried)

	config.Weights = map[string]float64{"swap": 0, "reassign": 0}
	_, _, err = Run(scrambled(), config)
	assert.NotNil(t, err)
}

func TestMetrics(t *testing.T) {
	//** Arrange
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	//** Act
	result, report, err := Run(scrambled(), testConfig(ModeILS), WithMetrics(metrics))

	//** Assert
	require.Nil(t, err)
	for name, stats := range report.Moves {
		assert.Equal(t, float64(stats.Accepted), testutil.ToFloat64(metrics.MovesTotal.WithLabelValues(name, "accepted")))
		assert.Equal(t, float64(stats.Rejected), testutil.ToFloat64(metrics.MovesTotal.WithLabelValues(name, "rejected")))
		assert.Equal(t, float64(stats.Infeasible), testutil.ToFloat64(metrics.MovesTotal.WithLabelValues(name, "infeasible")))
		assert.Equal(t, stats.Tried, stats.Accepted+stats.Rejected+stats.Infeasible)
	}
	assert.Equal(t, float64(result.Cost().Hard), testutil.ToFloat64(metrics.Cost.WithLabelValues("current", "hard")))
	assert.Equal(t, float64(report.Restores), testutil.ToFloat64(metrics.Restores))
}

func TestLogging(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, report, err := Run(scrambled(), testConfig(ModeDescent), WithLogger(logger))

	require.Nil(t, err)
	assert.Contains(t, buffer.String(), "search finished")
	assert.Contains(t, buffer.String(), "run="+report.RunID)
	assert.Contains(t, buffer.String(), "neighborhood=reassign")
}

func TestConfigValidate(t *testing.T) {
	assert.Nil(t, DefaultConfig().Validate())

	invalid := []func(config *Config){
		func(config *Config) { config.Mode = "tabu" },
		func(config *Config) { config.TimeLimit = -1 },
		func(config *Config) { config.SaMax = 0 },
		func(config *Config) { config.TempMin = 2 * config.TempIni },
		func(config *Config) { config.Alpha = 1 },
		func(config *Config) { config.PertMax = 0 },
		func(config *Config) { config.Ceiling = 0 },
		func(config *Config) { config.HardWeight = 0.5 },
		func(config *Config) { config.Weights = map[string]float64{"swap": -1} },
	}
	for _, mutate := range invalid {
		config := DefaultConfig()
		mutate(&config)
		assert.NotNil(t, config.Validate())
	}

	_, _, err := Run(scrambled(), Config{})
	assert.NotNil(t, err)
}
