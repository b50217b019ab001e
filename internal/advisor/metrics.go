package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the collectors updated by the orchestrator.
type Metrics struct {
	Submissions        *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
}

// NewMetrics registers the advisor collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecooracle_submissions_total",
				Help: "Total number of advice submissions by feature and outcome",
			},
			[]string{"feature", "outcome"},
		),
		GenerationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecooracle_generation_duration_seconds",
				Help:    "Duration of model generation calls in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"feature"},
		),
	}
}
