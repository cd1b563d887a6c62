package search

import (
	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "hstt"

const searchSubsystem = "search"

type Metrics struct {
	// MovesTotal counts moves by neighbourhood and outcome.
	// Labels: neighborhood, outcome (infeasible, accepted, rejected)
	MovesTotal *prometheus.CounterVec

	// Cost of the current and best solutions.
	// Labels: solution (current, best), component (hard, soft)
	Cost *prometheus.GaugeVec

	// Restores counts how often a search fell back to its best solution
	Restores prometheus.Counter
}

// NewMetrics registers the search metrics on registerer. Each search owns its metrics, so
// tests and concurrent runs pass their own registry
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		MovesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "moves_total",
			Help:      "Moves drawn by neighbourhood and outcome",
		}, []string{"neighborhood", "outcome"}),
		Cost: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "cost",
			Help:      "Cost of the current and best solutions",
		}, []string{"solution", "component"}),
		Restores: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "restores_total",
			Help:      "Restorations of the best solution",
		}),
	}
}

func (m *Metrics) RecordMove(neighborhood, outcome string) {
	m.MovesTotal.WithLabelValues(neighborhood, outcome).Inc()
}

func (m *Metrics) RecordCost(solution string, c cost.Cost) {
	m.Cost.WithLabelValues(solution, "hard").Set(float64(c.Hard))
	m.Cost.WithLabelValues(solution, "soft").Set(float64(c.Soft))
}
