// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BallotsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ballots_submitted_total",
			Help: "Total number of ballots accepted by the backend",
		},
		[]string{"override"},
	)

	BallotsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ballots_rejected_total",
			Help: "Total number of ballot submissions refused",
		},
		[]string{"error_code"},
	)

	ReceiptLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipt_lookups_total",
			Help: "Total number of receipt verifications and reconstructions",
		},
		[]string{"operation", "outcome"},
	)

	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "ballot_submission_duration_seconds",
			Help: "Duration of ballot submission round trips in seconds",
		},
	)
)
