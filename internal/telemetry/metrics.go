package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricsComputations counts aggregation runs by result ("hit" served from
	// the memoized snapshot, "miss" recomputed).
	MetricsComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "metrics_computations_total",
		Help:      "Derived metrics computations by cache result.",
	}, []string{"result"})

	// Mutations counts state container operations by record kind and outcome.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "mutations_total",
		Help:      "Workspace mutations by kind and outcome.",
	}, []string{"kind", "outcome"})

	// OpenWorkspaces tracks the number of signed-in owners held in memory.
	OpenWorkspaces = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "inventory",
		Name:      "open_workspaces",
		Help:      "Number of owner workspaces currently loaded.",
	})

	// ReportsGenerated counts rendered report artifacts by format.
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "reports_generated_total",
		Help:      "Rendered report artifacts by format.",
	}, []string{"format"})
)

// Outcome labels a mutation result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
