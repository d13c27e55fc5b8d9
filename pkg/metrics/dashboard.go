package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// DashboardMetrics instruments the seller dashboard read path and the event write path.
type DashboardMetrics struct {
	builds   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cache    *prometheus.CounterVec
	events   *prometheus.CounterVec
}

// NewDashboardMetrics registers the dashboard collectors. A nil registerer yields a no-op recorder.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	if reg == nil {
		return &DashboardMetrics{}
	}
	m := &DashboardMetrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "builds_total",
			Help:      "Dashboard payload builds by period and outcome.",
		}, []string{"period", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "build_duration_seconds",
			Help:      "Time spent fetching and assembling a dashboard payload.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"period"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "cache_lookups_total",
			Help:      "Dashboard cache lookups by result.",
		}, []string{"result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "events_total",
			Help:      "Seller events applied to daily metrics by type and outcome.",
		}, []string{"type", "outcome"}),
	}
	reg.MustRegister(m.builds, m.duration, m.cache, m.events)
	return m
}

func (m *DashboardMetrics) ObserveBuild(period string, duration time.Duration, err error) {
	if m == nil || m.builds == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.builds.WithLabelValues(labelOrUnknown(period), outcome).Inc()
	m.duration.WithLabelValues(labelOrUnknown(period)).Observe(duration.Seconds())
}

func (m *DashboardMetrics) ObserveCache(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(labelOrUnknown(result)).Inc()
}

func (m *DashboardMetrics) ObserveEvent(eventType string, err error) {
	if m == nil || m.events == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.events.WithLabelValues(labelOrUnknown(eventType), outcome).Inc()
}
