// Package metrics exposes Prometheus instruments for discovery operations.
//
//	start := time.Now()
//	...
//	metrics.RecordOperation("feed", "ok", time.Since(start))
//	metrics.RecordCandidates("feed", len(candidates))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts engine operations by name and outcome
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_operations_total",
			Help: "Total number of discovery operations",
		},
		[]string{"operation", "outcome"},
	)

	// OperationDuration tracks how long one snapshot read plus scoring takes
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_operation_duration_seconds",
			Help:    "Duration of discovery operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// CandidatesScanned is the size of the corpus an operation walked
	CandidatesScanned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_candidates_scanned",
			Help:    "Number of content items or profiles scanned per operation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"operation"},
	)
)

// RecordOperation records one finished operation
func RecordOperation(operation, outcome string, d time.Duration) {
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
	OperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordCandidates records the number of items an operation scanned
func RecordCandidates(operation string, n int) {
	CandidatesScanned.WithLabelValues(operation).Observe(float64(n))
}
