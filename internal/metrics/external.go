package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outbound call metrics: document store, mail provider, LLM, rate limiter.
var (
	DocstoreRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "docstore_requests_total",
			Help:      "Total number of document store requests",
		},
		[]string{"op", "status"},
	)

	DocstoreRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "folio",
			Name:      "docstore_request_duration_seconds",
			Help:      "Document store request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"},
	)

	MailSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "mail_sent_total",
			Help:      "Total number of outbound emails",
		},
		[]string{"provider", "kind", "status"},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "generation_requests_total",
			Help:      "Total number of LLM content generation requests",
		},
		[]string{"model", "status"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "generation_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model", "type"}, // "prompt" / "completion"
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)
)

var externalMetricsRegistered bool

// RegisterExternalMetrics registers outbound call metrics. Must be called once from main.
func RegisterExternalMetrics() {
	if externalMetricsRegistered {
		return
	}
	prometheus.MustRegister(DocstoreRequestsTotal)
	prometheus.MustRegister(DocstoreRequestDuration)
	prometheus.MustRegister(MailSentTotal)
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationTokensTotal)
	prometheus.MustRegister(RateLimitedTotal)
	externalMetricsRegistered = true
}

// ObserveDocstoreRequest records one store round trip. Transport failures are
// labelled "error"; answered requests by status class ("2xx", "4xx", ...).
func ObserveDocstoreRequest(op string, status int, err error, elapsed time.Duration) {
	DocstoreRequestsTotal.WithLabelValues(op, statusClass(status, err)).Inc()
	DocstoreRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func statusClass(status int, err error) string {
	if status == 0 {
		if err != nil {
			return "error"
		}
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
