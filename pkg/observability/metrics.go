package observability

import (
	"context"
	"errors"

	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Trial outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeNonZero     = "nonzero"
	OutcomeLaunchError = "launch_error"
	OutcomeCanceled    = "canceled"
)

// Metrics holds the Prometheus collectors for a sweep.
type Metrics struct {
	TrialsStarted  prometheus.Counter
	TrialsFinished *prometheus.CounterVec
	Position       prometheus.Gauge
	TotalTrials    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TrialsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridsweep_trials_started_total",
			Help: "Total number of solver invocations issued",
		}),
		TrialsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridsweep_trials_finished_total",
				Help: "Total number of solver invocations that returned, by outcome",
			},
			[]string{"outcome"},
		),
		Position: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridsweep_sweep_position",
			Help: "Ordinal of the trial currently in flight (1-based)",
		}),
		TotalTrials: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridsweep_sweep_total_trials",
			Help: "Number of trials in the sweep grid",
		}),
	}
	reg.MustRegister(m.TrialsStarted, m.TrialsFinished, m.Position, m.TotalTrials)
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSweepStart: func(_ context.Context, e *domain.SweepEvent) {
			m.TotalTrials.Set(float64(e.Total))
			m.Position.Set(0)
		},
		OnTrialStart: func(_ context.Context, e *domain.TrialEvent) {
			m.TrialsStarted.Inc()
			m.Position.Set(float64(e.Trial.Ordinal))
		},
		OnTrialFinish: func(_ context.Context, e *domain.TrialEvent) {
			m.TrialsFinished.WithLabelValues(Outcome(e)).Inc()
		},
	}
}

// Outcome classifies a finished trial.
func Outcome(e *domain.TrialEvent) string {
	switch {
	case e.Err == nil && e.Status.Success():
		return OutcomeOK
	case e.Err == nil:
		return OutcomeNonZero
	case errors.Is(e.Err, context.Canceled), errors.Is(e.Err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeLaunchError
	}
}
