// Package observability exposes Prometheus metrics for the service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing, so instrumentation points never need to
// guard against a missing registry.
type Metrics struct {
	sessionsTotal   *prometheus.CounterVec
	agentCallsTotal *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
}

// New registers the collectors with reg and returns the Metrics handle.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		sessionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lazysusan",
			Name:      "sessions_total",
			Help:      "Completed orchestration sessions by verbosity and status.",
		}, []string{"verbosity", "status"}),
		agentCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lazysusan",
			Name:      "agent_calls_total",
			Help:      "Per-agent gateway invocations by outcome.",
		}, []string{"agent", "status"}),
		gatewayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lazysusan",
			Name:      "gateway_call_duration_seconds",
			Help:      "Latency of completion gateway calls by model.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"model"}),
	}
}

// RecordSession counts one completed session.
func (m *Metrics) RecordSession(verbosity, status string) {
	if m == nil {
		return
	}
	m.sessionsTotal.WithLabelValues(verbosity, status).Inc()
}

// RecordAgentCall counts one agent invocation outcome.
func (m *Metrics) RecordAgentCall(agent, status string) {
	if m == nil {
		return
	}
	m.agentCallsTotal.WithLabelValues(agent, status).Inc()
}

// ObserveGatewayCall records the latency of one gateway call.
func (m *Metrics) ObserveGatewayCall(model string, d time.Duration) {
	if m == nil {
		return
	}
	m.gatewayDuration.WithLabelValues(model).Observe(d.Seconds())
}
