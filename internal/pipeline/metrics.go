package pipeline

import "github.com/prometheus/client_golang/prometheus"

var (
	// decisionsTotal counts completed decisions by terminal status.
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payrouter",
			Name:      "decisions_total",
			Help:      "Completed charge decisions by status.",
		},
		[]string{"status"},
	)

	// riskScoreObserved captures the distribution of assessed risk scores.
	riskScoreObserved = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "payrouter",
			Name:      "risk_score",
			Help:      "Assessed risk scores.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.35, 0.5, 0.65, 0.8, 1.0},
		},
	)

	// providerCharges counts simulated provider calls by provider and result.
	providerCharges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payrouter",
			Name:      "provider_charges_total",
			Help:      "Simulated provider charges by provider and result.",
		},
		[]string{"provider", "result"},
	)

	// providerLatency observes simulated provider round-trip time.
	providerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payrouter",
			Name:      "provider_charge_duration_seconds",
			Help:      "Simulated provider charge duration in seconds.",
			Buckets:   []float64{0.05, 0.075, 0.1, 0.125, 0.15, 0.2},
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(
		decisionsTotal,
		riskScoreObserved,
		providerCharges,
		providerLatency,
	)
}
