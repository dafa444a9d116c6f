package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service-level Prometheus collectors, registered on the default registry
// and exposed via promhttp in cmd/app.

var (
	// BalanceCacheHits counts balance reads served from the cache window.
	BalanceCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tazdani",
		Subsystem: "balance_cache",
		Name:      "hits_total",
		Help:      "Number of balance reads served from the cache.",
	})

	// BalanceCacheMisses counts balance reads that went to the wallet store.
	BalanceCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tazdani",
		Subsystem: "balance_cache",
		Name:      "misses_total",
		Help:      "Number of balance reads that fetched from storage.",
	})

	// MovementsProcessed counts movement attempts by type and outcome.
	MovementsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tazdani",
		Subsystem: "movements",
		Name:      "processed_total",
		Help:      "Number of movement attempts by type and outcome.",
	}, []string{"type", "outcome"})

	// MovementAmount observes committed movement amounts in dirhams.
	MovementAmount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tazdani",
		Subsystem: "movements",
		Name:      "amount_dirhams",
		Help:      "Committed movement amounts in dirhams.",
		Buckets:   prometheus.ExponentialBuckets(1000, 10, 6),
	}, []string{"type"})
)

// Outcome labels for MovementsProcessed.
const (
	OutcomeCompleted = "completed"
	OutcomeReplayed  = "replayed"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)
