package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60},
		},
	)

	totalHttpRequestsAuthenticated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_authenticated", Help: "http requests by authentication state"},
		[]string{"authenticated"},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_uri", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	authOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_outcomes_total", Help: "authorization decisions by outcome"},
		[]string{"status"},
	)

	remoteAuthoritySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_authority_seconds",
			Help:    "latency of validation calls to the remote authority.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"verdict"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsAuthenticated,
		totalHttpRequestsToUri,
		totalHttpRequests,
		authOutcomes,
		remoteAuthoritySeconds,
	)
}
