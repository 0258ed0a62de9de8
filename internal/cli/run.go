package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	httpadapter "github.com/aretw0/gridsweep/internal/adapters/http"
	"github.com/aretw0/gridsweep/internal/presentation/tui"
	"github.com/aretw0/gridsweep/pkg/adapters/memory"
	"github.com/aretw0/gridsweep/pkg/adapters/process"
	"github.com/aretw0/gridsweep/pkg/adapters/redis"
	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/aretw0/gridsweep/pkg/observability"
	"github.com/aretw0/gridsweep/pkg/ports"
	"github.com/aretw0/gridsweep/pkg/sweep"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	// Dir is the project directory: config lookup and default solver working dir.
	Dir        string
	ConfigPath string
	// Overrides holds config keys set explicitly on the command line.
	Overrides map[string]any
	DryRun    bool
	Quiet     bool
	Version   string

	// Stdout receives dry-run output and the banner; Stderr receives logs.
	// Both default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Invoker replaces the process invoker. Used by tests.
	Invoker ports.Invoker
}

func (o *RunOptions) streams() (io.Writer, io.Writer) {
	stdout, stderr := o.Stdout, o.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

// RunSweep resolves configuration and runs the full sweep.
func RunSweep(ctx context.Context, opts RunOptions) error {
	stdout, stderr := opts.streams()

	cfg, err := resolveConfig(opts.Dir, opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	logger, err := createLogger(cfg, stderr)
	if err != nil {
		return err
	}
	solver, err := resolveSolver(cfg)
	if err != nil {
		return err
	}

	driverOpts := []sweep.Option{
		sweep.WithSolver(solver.Path),
		sweep.WithLogger(logger),
		sweep.WithLockTTL(cfg.LockTTL),
	}
	hookSets := []domain.LifecycleHooks{createDebugHooks(logger)}

	invoker := opts.Invoker
	if opts.DryRun {
		invoker = memory.NewRecorder()
		hookSets = append(hookSets, domain.LifecycleHooks{
			OnTrialStart: func(_ context.Context, e *domain.TrialEvent) {
				fmt.Fprintln(stdout, e.Invocation.String())
			},
		})
	}
	if invoker == nil {
		invoker = process.NewInvoker(process.WithSolver(solver))
	}

	if cfg.MetricsAddr != "" {
		hooks, err := startMetrics(ctx, cfg.MetricsAddr, opts.Version, logger)
		if err != nil {
			return err
		}
		hookSets = append(hookSets, hooks)
	}

	// A dry run executes nothing, so it does not compete for the lock.
	if cfg.RedisAddr != "" && !opts.DryRun {
		client, err := redis.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer client.Close()
		driverOpts = append(driverOpts, sweep.WithLocker(redis.NewLocker(client, redis.DefaultPrefix)))
	}

	driverOpts = append(driverOpts, sweep.WithHooks(observability.Combine(hookSets...)))
	drv := sweep.New(invoker, driverOpts...)

	if !opts.Quiet && !opts.DryRun {
		if f, ok := stdout.(*os.File); ok && tui.IsTerminal(f) {
			tui.PrintBanner(stdout, solver.Path, drv.Grid().Size())
		}
	}

	return drv.Run(ctx)
}

// startMetrics serves /metrics and /status for the lifetime of ctx and
// returns the hooks that feed them.
func startMetrics(ctx context.Context, addr, version string, logger *slog.Logger) (domain.LifecycleHooks, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)
	progress := observability.NewProgress()

	errc, err := httpadapter.Serve(ctx, addr, httpadapter.NewHandler(progress, reg, version), logger)
	if err != nil {
		return domain.LifecycleHooks{}, fmt.Errorf("metrics server: %w", err)
	}
	go func() {
		if err := <-errc; err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	return observability.Combine(metrics.Hooks(), progress.Hooks()), nil
}
