package ports

import (
	"context"

	"github.com/aretw0/gridsweep/pkg/domain"
)

// Invoker runs one solver invocation to completion.
//
// Invoke blocks until the process has terminated. A process that ran and
// exited non-zero is reported through ExitStatus with a nil error, and so is
// a solver that is missing (domain.ExitNotFound) or not executable
// (domain.ExitNotExecutable). The error is reserved for faults of the launch
// mechanism itself (wrapping domain.ErrLaunch) and for context cancellation.
type Invoker interface {
	Invoke(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error)
}

// InvokerFunc adapts a plain function to Invoker.
type InvokerFunc func(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error) {
	return f(ctx, inv)
}
