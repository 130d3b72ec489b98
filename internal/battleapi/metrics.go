package battleapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the battle server's collectors. They are registered on the
// registry passed to NewMetrics so servers in tests do not collide.
type Metrics struct {
	// TurnsResolved counts resolved turns by who took the damage.
	TurnsResolved *prometheus.CounterVec
	// BadRequests counts rejected resolve-turn bodies.
	BadRequests prometheus.Counter
	// RequestDuration tracks handler latency per route pattern.
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TurnsResolved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Subsystem: "battle",
			Name:      "turns_resolved_total",
			Help:      "Total resolved battle turns by damage target.",
		}, []string{"target"}),
		BadRequests: f.NewCounter(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Subsystem: "battle",
			Name:      "bad_requests_total",
			Help:      "Resolve-turn requests rejected for missing or malformed data.",
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "studybuddy",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route", "method", "status"}),
	}
}
