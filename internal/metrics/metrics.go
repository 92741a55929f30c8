package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobalerts_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobalerts_cache_lookups_total",
			Help: "Cache lookups by tier and outcome.",
		},
		[]string{"tier", "outcome"},
	)
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobalerts_search_duration_seconds",
			Help:    "Duration of search requests by result source.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)
	OriginRequestsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobalerts_origin_requests_total",
			Help: "Total number of requests sent to the origin provider.",
		},
	)
	DigestUsersCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobalerts_digest_users_total",
			Help: "Digest run outcomes per user.",
		},
		[]string{"result"},
	)
	DigestRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobalerts_digest_run_duration_seconds",
			Help:    "Duration of each digest run in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300, 900},
		},
	)
)

func Register() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(OriginRequestsCounter)
	prometheus.MustRegister(DigestUsersCounter)
	prometheus.MustRegister(DigestRunDuration)
}
