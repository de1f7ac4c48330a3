package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/typeguard/pkg/validate"
)

// Metrics holds the Prometheus collectors fed by validation hooks.
type Metrics struct {
	Validations *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Fallbacks   *prometheus.CounterVec
	Stripped    prometheus.Counter
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeguard_validations_total",
				Help: "Total number of validations by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeguard_field_errors_total",
				Help: "Total number of field errors by kind",
			},
			[]string{"kind"},
		),
		Fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeguard_base_fallbacks_total",
				Help: "Total number of values replaced by their type's base value",
			},
			[]string{"type"},
		),
		Stripped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "typeguard_stripped_keys_total",
				Help: "Total number of undeclared nested keys dropped",
			},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "typeguard_validation_duration_seconds",
				Help:    "Duration of validations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"mode"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Validations, m.Failures, m.Fallbacks, m.Stripped, m.Duration)
	}
	return m
}

// Hooks returns validation hooks that record into m.
func (m *Metrics) Hooks() validate.Hooks {
	return validate.Hooks{
		OnValidate: func(e *validate.ValidationEvent) {
			outcome := "ok"
			if len(e.Errors) > 0 {
				outcome = "failed"
			}
			mode := string(e.Mode)
			m.Validations.WithLabelValues(mode, outcome).Inc()
			m.Duration.WithLabelValues(mode).Observe(e.Duration.Seconds())
			m.Stripped.Add(float64(e.Stripped))
			for _, fe := range e.Errors {
				m.Failures.WithLabelValues(fe.Kind.String()).Inc()
			}
		},
		OnFallback: func(e *validate.FallbackEvent) {
			m.Fallbacks.WithLabelValues(e.Type).Inc()
		},
	}
}
