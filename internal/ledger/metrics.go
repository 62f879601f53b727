package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ledgerOpsTotal counts ledger operations by type.
	ledgerOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payrouter",
			Name:      "ledger_operations_total",
			Help:      "Total ledger operations by type.",
		},
		[]string{"type"},
	)

	// ledgerOpDuration observes operation latency by type.
	ledgerOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payrouter",
			Name:      "ledger_operation_duration_seconds",
			Help:      "Ledger operation duration in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"type"},
	)

	// recordsRetained tracks the current ledger size.
	recordsRetained = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "payrouter",
			Name:      "ledger_records_retained",
			Help:      "Number of records currently held by the ledger.",
		},
	)

	// recordsEvicted counts tail evictions at capacity.
	recordsEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "payrouter",
			Name:      "ledger_records_evicted_total",
			Help:      "Total records evicted because the ledger was at capacity.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ledgerOpsTotal,
		ledgerOpDuration,
		recordsRetained,
		recordsEvicted,
	)
}

// observeOp increments the operation counter and returns a function to
// observe duration.
func observeOp(opType string) func() {
	ledgerOpsTotal.WithLabelValues(opType).Inc()
	start := time.Now()
	return func() {
		ledgerOpDuration.WithLabelValues(opType).Observe(time.Since(start).Seconds())
	}
}
