package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/gridsweep/pkg/domain"
)

// SweepState is the coarse lifecycle of a sweep as seen from outside.
type SweepState string

const (
	StatePending  SweepState = "pending"
	StateRunning  SweepState = "running"
	StateFinished SweepState = "finished"
	StateFailed   SweepState = "failed"
)

// Snapshot is a point-in-time view of sweep progress.
type Snapshot struct {
	RunID     string             `json:"run_id"`
	Solver    string             `json:"solver,omitempty"`
	State     SweepState         `json:"state"`
	Total     int                `json:"total"`
	Completed int                `json:"completed"`
	Current   *domain.Trial      `json:"current,omitempty"`
	Command   string             `json:"command,omitempty"`
	LastExit  *domain.ExitStatus `json:"last_exit,omitempty"`
	StartedAt time.Time          `json:"started_at,omitzero"`
	Error     string             `json:"error,omitempty"`
}

// Progress tracks the latest Snapshot. Safe for concurrent use.
type Progress struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewProgress creates a tracker in the pending state.
func NewProgress() *Progress {
	return &Progress{snap: Snapshot{State: StatePending}}
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.snap
	if s.Current != nil {
		cur := *s.Current
		s.Current = &cur
	}
	if s.LastExit != nil {
		le := *s.LastExit
		s.LastExit = &le
	}
	return s
}

// Hooks returns lifecycle hooks that keep the snapshot current.
func (p *Progress) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSweepStart: func(_ context.Context, e *domain.SweepEvent) {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.snap = Snapshot{
				RunID:     e.RunID,
				Solver:    e.Solver,
				State:     StateRunning,
				Total:     e.Total,
				StartedAt: e.Timestamp,
			}
		},
		OnTrialStart: func(_ context.Context, e *domain.TrialEvent) {
			p.mu.Lock()
			defer p.mu.Unlock()
			trial := e.Trial
			p.snap.Current = &trial
			p.snap.Command = e.Invocation.String()
		},
		OnTrialFinish: func(_ context.Context, e *domain.TrialEvent) {
			p.mu.Lock()
			defer p.mu.Unlock()
			if e.Err == nil {
				p.snap.Completed++
				status := e.Status
				p.snap.LastExit = &status
			}
		},
		OnSweepFinish: func(_ context.Context, e *domain.SweepEvent) {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.snap.Current = nil
			p.snap.Command = ""
			p.snap.Completed = e.Completed
			if e.Err != nil {
				p.snap.State = StateFailed
				p.snap.Error = e.Err.Error()
				return
			}
			p.snap.State = StateFinished
		},
	}
}
