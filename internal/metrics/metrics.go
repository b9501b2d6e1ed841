package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Registry         *prometheus.Registry
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	ActiveSessions   prometheus.Gauge
	SessionsEvicted  prometheus.Counter
	ValidationErrors *prometheus.CounterVec
}

// New registers the console metrics on a fresh registry so several servers
// can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "spycat_upstream_requests_total",
			Help: "Calls to the agency API by operation and outcome",
		}, []string{"operation", "outcome"}),
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spycat_upstream_latency_seconds",
			Help:    "Latency of agency API calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "spycat_console_sessions",
			Help: "Console sessions currently held in memory",
		}),
		SessionsEvicted: factory.NewCounter(prometheus.CounterOpts{
			Name: "spycat_console_sessions_evicted_total",
			Help: "Console sessions dropped after being idle",
		}),
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "spycat_validation_errors_total",
			Help: "Operator input rejected before any upstream call",
		}, []string{"form"}),
	}
}

// ObserveUpstream matches agencyapi.ObserveFunc.
func (m *Metrics) ObserveUpstream(op, outcome string, elapsed time.Duration) {
	m.UpstreamRequests.WithLabelValues(op, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementValidationError(form string) {
	m.ValidationErrors.WithLabelValues(form).Inc()
}
