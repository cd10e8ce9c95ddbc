// Package metrics defines the Prometheus collectors exported by the
// virta HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	QuestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "virta", Name: "questions_total", Help: "Number of questions answered, by outcome."},
		[]string{"outcome"},
	)
	UpstreamLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "virta", Name: "answer_duration_seconds", Help: "Time spent producing an answer, including the model call.", Buckets: prometheus.DefBuckets},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "virta", Name: "http_requests_total", Help: "Number of HTTP requests by path and status code."},
		[]string{"path", "code"},
	)
)

// Outcome labels for QuestionsTotal.
const (
	OutcomeAnswered = "answered"
	OutcomeDegraded = "degraded"
	OutcomeRejected = "rejected"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(QuestionsTotal)
	reg.MustRegister(UpstreamLatency)
	reg.MustRegister(HTTPRequests)
}
