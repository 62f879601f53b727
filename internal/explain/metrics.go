package explain

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "explain",
		Name:      "cache_hits_total",
		Help:      "Explanation cache hits.",
	})

	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "explain",
		Name:      "cache_misses_total",
		Help:      "Explanation cache misses.",
	})

	generationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "explain",
		Name:      "generation_failures_total",
		Help:      "External generation failures absorbed by the fallback.",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, generationFailures)
}
