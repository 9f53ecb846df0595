package metrics

import "github.com/prometheus/client_golang/prometheus"

// Selection Prometheus metrics.
var (
	SelectionRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "selection_runs_total",
			Help:      "Total selection runs by workflow",
		},
		[]string{"workflow"}, // "items" / "recipe"
	)

	SelectionItemsAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "selection_items_accepted_total",
			Help:      "Catalog items accepted into grocery lists",
		},
		[]string{"store"},
	)

	SelectionCandidatesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "selection_candidates_rejected_total",
			Help:      "Candidates rejected during selection",
		},
		[]string{"reason"}, // "eligibility" / "budget" / "missing_item" / "store"
	)

	IndexSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pantry",
			Name:      "catalog_index_size",
			Help:      "Number of items in the catalog index",
		},
	)
)

var selMetricsRegistered bool

// RegisterSelectionMetrics registers Prometheus selection metrics. Must be called once from main.
func RegisterSelectionMetrics() {
	if selMetricsRegistered {
		return
	}
	prometheus.MustRegister(SelectionRunsTotal)
	prometheus.MustRegister(SelectionItemsAccepted)
	prometheus.MustRegister(SelectionCandidatesRejected)
	prometheus.MustRegister(IndexSize)
	selMetricsRegistered = true
}
