package memory

import (
	"context"
	"sync"

	"github.com/aretw0/gridsweep/pkg/domain"
)

// Call is one invocation seen by a Recorder.
type Call struct {
	Invocation domain.Invocation
	Status     domain.ExitStatus
	Err        error
}

// StatusFunc decides the outcome of the n-th call (0-based).
type StatusFunc func(n int, inv domain.Invocation) (domain.ExitStatus, error)

// Recorder implements ports.Invoker without starting processes.
// It records every call in order. Safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	calls       []Call
	statusFn    StatusFunc
	inFlight    int
	maxInFlight int
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithStatusFunc sets how each call resolves. Defaults to exit code 0.
func WithStatusFunc(fn StatusFunc) RecorderOption {
	return func(r *Recorder) {
		r.statusFn = fn
	}
}

// WithLaunchError makes the n-th call (0-based) fail to launch.
func WithLaunchError(n int, err error) RecorderOption {
	return WithStatusFunc(func(i int, _ domain.Invocation) (domain.ExitStatus, error) {
		if i == n {
			return domain.ExitStatus{}, err
		}
		return domain.ExitStatus{}, nil
	})
}

// NewRecorder creates a new recording invoker.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invoke records inv and returns the configured outcome.
func (r *Recorder) Invoke(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExitStatus{}, err
	}

	r.mu.Lock()
	n := len(r.calls)
	r.inFlight++
	if r.inFlight > r.maxInFlight {
		r.maxInFlight = r.inFlight
	}
	fn := r.statusFn
	r.mu.Unlock()

	var status domain.ExitStatus
	var err error
	if fn != nil {
		status, err = fn(n, inv)
	}

	args := make([]string, len(inv.Args))
	copy(args, inv.Args)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight--
	r.calls = append(r.calls, Call{
		Invocation: domain.Invocation{Path: inv.Path, Args: args},
		Status:     status,
		Err:        err,
	})
	return status, err
}

// Calls returns a copy of the recorded calls in invocation order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Invocations returns just the invocations, in order.
func (r *Recorder) Invocations() []domain.Invocation {
	calls := r.Calls()
	out := make([]domain.Invocation, len(calls))
	for i, c := range calls {
		out[i] = c.Invocation
	}
	return out
}

// MaxInFlight reports the highest number of simultaneous Invoke calls observed.
func (r *Recorder) MaxInFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxInFlight
}

// Reset clears recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.inFlight = 0
	r.maxInFlight = 0
}
