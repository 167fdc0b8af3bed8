package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records submission outcomes on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	attempts prometheus.Counter
	duration prometheus.Histogram
}

// NewMetrics creates a metrics set with its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investorlens",
			Subsystem: "analysis",
			Name:      "requests_total",
			Help:      "Analysis submissions by outcome.",
		}, []string{"outcome"}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "investorlens",
			Subsystem: "analysis",
			Name:      "attempts_total",
			Help:      "HTTP attempts made against the analysis service, retries included.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "investorlens",
			Subsystem: "analysis",
			Name:      "request_duration_seconds",
			Help:      "Wall time of a submission, retries included.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
	m.registry.MustRegister(m.requests, m.attempts, m.duration)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(outcome string, attempts int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.attempts.Add(float64(attempts))
	m.duration.Observe(elapsed.Seconds())
}

// WriteTextfile writes the current values in the node-exporter textfile
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	return AsFailure(err).Kind.String()
}
