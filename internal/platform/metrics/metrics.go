// Package metrics defines the worker's prometheus instrumentation. All
// metrics live in one bundle that is created once at startup and injected
// into the components that record them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics contains the pipeline-level metrics.
type Metrics struct {
	MessagesReceived     prometheus.Counter
	MessagesProcessed    *prometheus.CounterVec
	MessagesDeadLettered prometheus.Counter
	ProcessingDuration   prometheus.Histogram
	ModelState           prometheus.Gauge
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "labelworker",
			Subsystem: "messages",
			Name:      "received_total",
			Help:      "Total number of messages received from the primary queue",
		}),

		MessagesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "labelworker",
				Subsystem: "messages",
				Name:      "processed_total",
				Help:      "Total number of messages processed, by outcome",
			},
			[]string{"outcome"},
		),

		MessagesDeadLettered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "labelworker",
			Subsystem: "messages",
			Name:      "dead_lettered_total",
			Help:      "Total number of messages forwarded to the dead-letter queue",
		}),

		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "labelworker",
			Subsystem: "processing",
			Name:      "duration_seconds",
			Help:      "Per-message processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		ModelState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "labelworker",
			Subsystem: "model",
			Name:      "state",
			Help:      "Detection model state (0=stopped, 1=starting, 2=running, 3=stopping, 4=unknown)",
		}),
	}
}

// Register registers all metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		m.MessagesReceived,
		m.MessagesProcessed,
		m.MessagesDeadLettered,
		m.ProcessingDuration,
		m.ModelState,
	} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
