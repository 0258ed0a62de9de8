package gridsweep

import (
	"context"

	"github.com/aretw0/gridsweep/pkg/adapters/process"
	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/aretw0/gridsweep/pkg/sweep"
)

// Version is the release of the gridsweep module.
const Version = "0.3.0"

// RunSweep runs the fixed benchmark sweep against the solver at solverPath,
// launching real processes. Extra options are passed to the driver.
func RunSweep(ctx context.Context, solverPath string, opts ...sweep.Option) error {
	return New(solverPath, opts...).Run(ctx)
}

// New returns a Driver wired to the process invoker for solverPath.
func New(solverPath string, opts ...sweep.Option) *sweep.Driver {
	all := append([]sweep.Option{sweep.WithSolver(solverPath)}, opts...)
	return sweep.New(process.NewInvoker(), all...)
}

// Trials returns the fixed grid's trials in execution order.
func Trials() []domain.Trial {
	return domain.DefaultGrid().Trials()
}
