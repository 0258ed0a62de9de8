package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSweepStart  EventType = "sweep_start"
	EventSweepFinish EventType = "sweep_finish"
	EventTrialStart  EventType = "trial_start"
	EventTrialFinish EventType = "trial_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// SweepEvent marks the boundaries of a whole sweep.
type SweepEvent struct {
	EventBase
	Solver string `json:"solver"`
	Total  int    `json:"total"`
	// Completed is only meaningful on EventSweepFinish.
	Completed int   `json:"completed"`
	Err       error `json:"-"`
}

// TrialEvent represents a single solver invocation.
type TrialEvent struct {
	EventBase
	Trial      Trial      `json:"trial"`
	Invocation Invocation `json:"invocation"`
	Total      int        `json:"total"`
	// Status and Err are set on EventTrialFinish.
	Status ExitStatus `json:"status"`
	Err    error      `json:"-"`
}

// LifecycleHooks defines callbacks for sweep observability.
// Hooks run synchronously on the driver goroutine.
type LifecycleHooks struct {
	OnSweepStart  func(context.Context, *SweepEvent)
	OnSweepFinish func(context.Context, *SweepEvent)
	OnTrialStart  func(context.Context, *TrialEvent)
	OnTrialFinish func(context.Context, *TrialEvent)
}
