package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metricsRegistry struct {
	registry       *prometheus.Registry
	actionsTotal   *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
}

func newMetricsRegistry() *metricsRegistry {
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xmint_actions_total",
		Help: "Total number of connect and mint actions by result",
	}, []string{"action", "result"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xmint_action_duration_seconds",
		Help:    "Duration of connect and mint actions",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"action"})

	r := prometheus.NewRegistry()
	r.MustRegister(actions, duration)

	return &metricsRegistry{
		registry:       r,
		actionsTotal:   actions,
		actionDuration: duration,
	}
}

func (m *metricsRegistry) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metricsRegistry) observe(action, result string, started time.Time) {
	m.actionsTotal.WithLabelValues(action, result).Inc()
	m.actionDuration.WithLabelValues(action).Observe(time.Since(started).Seconds())
}
