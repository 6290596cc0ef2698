package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FetchResults counts completed on-chain reads by source and outcome.
	FetchResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lendboard",
		Name:      "onchain_fetch_total",
		Help:      "On-chain dataset fetches by source and outcome.",
	}, []string{"source", "outcome"})

	// PriceFetchResults counts price oracle fetches by provider and outcome.
	PriceFetchResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lendboard",
		Name:      "price_fetch_total",
		Help:      "Price oracle fetches by provider and outcome.",
	}, []string{"provider", "outcome"})

	// TokenResolutionFailures counts raw identifiers that could not be normalized.
	TokenResolutionFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lendboard",
		Name:      "token_resolution_failures_total",
		Help:      "Raw token identifiers that failed normalization.",
	})

	// ActiveSessions tracks live dashboard sessions.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lendboard",
		Name:      "active_sessions",
		Help:      "Dashboard sessions currently held in memory.",
	})

	// RPCDuration observes Starknet JSON-RPC call latency per entry point.
	RPCDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lendboard",
		Name:      "starknet_call_duration_seconds",
		Help:      "Latency of starknet_call requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"entry_point"})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FetchResults, PriceFetchResults, TokenResolutionFailures, ActiveSessions, RPCDuration)
	})
}

// Outcome returns the label value for an error result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
