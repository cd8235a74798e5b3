package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the itinerary pipeline. Registered once on the default
// registry and exposed through /metrics.
var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripwhisper_upstream_requests_total",
		Help: "Upstream HTTP requests by service and outcome.",
	}, []string{"service", "outcome"})

	MirrorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripwhisper_overpass_mirror_failures_total",
		Help: "Failed Overpass mirror attempts, before failing over or giving up.",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripwhisper_cache_hits_total",
		Help: "Cache hits by cache name.",
	}, []string{"cache"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripwhisper_cache_misses_total",
		Help: "Cache misses by cache name.",
	}, []string{"cache"})

	ItinerariesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripwhisper_itineraries_generated_total",
		Help: "Itinerary generations by outcome.",
	}, []string{"outcome"})
)
