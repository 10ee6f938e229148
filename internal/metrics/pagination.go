package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paginationPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resumepress",
			Subsystem: "pagination",
			Name:      "pages",
			Help:      "Pages produced per pagination run.",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 10},
		},
	)

	estimateRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumepress",
			Subsystem: "estimate",
			Name:      "runs_total",
			Help:      "Height estimation runs by the measurer that produced them.",
		},
		[]string{"source"},
	)
)

// ObservePagination records one finished layout run.
func ObservePagination(source string, pages int) {
	paginationPages.Observe(float64(pages))
	estimateRunsTotal.WithLabelValues(source).Inc()
}
