package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "healthtrack"

// Metrics holds the application collectors. A nil *Metrics is valid and
// records nothing, which keeps services usable without a registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	points       *prometheus.CounterVec
	streaks      *prometheus.CounterVec
	friendships  *prometheus.CounterVec
	sideEffects  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "path"},
		),
		points: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "points",
				Name:      "adjustments_total",
				Help:      "Point adjustments applied, by action and sign.",
			},
			[]string{"action", "sign"},
		),
		streaks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "streak",
				Name:      "updates_total",
				Help:      "Streak updates by outcome (started, extended, reset, unchanged).",
			},
			[]string{"outcome"},
		),
		friendships: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "friends",
				Name:      "transitions_total",
				Help:      "Friendship state transitions.",
			},
			[]string{"transition"},
		),
		sideEffects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "side_effects",
				Name:      "failures_total",
				Help:      "Best-effort side effects (points, streak) that failed and were swallowed.",
			},
			[]string{"kind"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.points,
		m.streaks,
		m.friendships,
		m.sideEffects,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(seconds)
}

func (m *Metrics) PointsAdjusted(action string, delta int) {
	if m == nil {
		return
	}
	sign := "positive"
	if delta < 0 {
		sign = "negative"
	}
	m.points.WithLabelValues(action, sign).Inc()
}

func (m *Metrics) StreakUpdated(outcome string) {
	if m == nil {
		return
	}
	m.streaks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) FriendshipTransition(transition string) {
	if m == nil {
		return
	}
	m.friendships.WithLabelValues(transition).Inc()
}

func (m *Metrics) SideEffectFailed(kind string) {
	if m == nil {
		return
	}
	m.sideEffects.WithLabelValues(kind).Inc()
}
