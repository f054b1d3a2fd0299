package fulfillment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
//
//   - procurement_requests_total{outcome}
//   - procurement_extraction_duration_seconds{provider}
//   - procurement_reserved_units_total
type Metrics struct {
	Requests           *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	ReservedUnits      prometheus.Counter
}

// NewMetrics registers the collectors with reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procurement_requests_total",
				Help: "Total number of processed procurement messages by outcome",
			},
			[]string{"outcome"},
		),
		ExtractionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "procurement_extraction_duration_seconds",
				Help:    "Time spent turning a message into a structured request",
				Buckets: []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 20},
			},
			[]string{"provider"},
		),
		ReservedUnits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "procurement_reserved_units_total",
				Help: "Total number of units successfully reserved",
			},
		),
	}
}
