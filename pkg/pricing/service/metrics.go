package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_provider_requests_total",
		Help: "Provider price fetches, after cache coalescing.",
	}, []string{"source"})

	providerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_provider_errors_total",
		Help: "Failed provider price fetches.",
	}, []string{"source"})

	mismatchRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_mismatch_rejections_total",
		Help: "Rule updates rejected by a cross-check deviation.",
	})

	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_resolutions_total",
		Help: "Price resolutions by validity mode and outcome.",
	}, []string{"validity", "outcome"})

	chainCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_chain_cache_misses_total",
		Help: "Rule chain rebuilds from the repository.",
	})
)
