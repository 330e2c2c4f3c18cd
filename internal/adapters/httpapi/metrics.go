package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the adapter's prometheus instruments.
type Metrics struct {
	SessionsCreated prometheus.Counter
	Choices         *prometheus.CounterVec
	SessionsExpired prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics builds and registers the instruments on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cyoa_sessions_created_total",
			Help: "Total number of reader sessions created",
		}),
		Choices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cyoa_choices_total",
			Help: "Total number of choice selections by result",
		}, []string{"result"}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cyoa_sessions_expired_total",
			Help: "Total number of sessions removed by expiry sweeps",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cyoa_http_request_duration_seconds",
			Help:    "HTTP request duration by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.SessionsCreated, m.Choices, m.SessionsExpired, m.RequestDuration)
	return m
}
