package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/gridsweep/internal/presentation/tui"
	"github.com/aretw0/gridsweep/pkg/adapters/memory"
	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/aretw0/gridsweep/pkg/sweep"
)

// PlanOptions configures the plan command.
type PlanOptions struct {
	Dir        string
	ConfigPath string
	Overrides  map[string]any
	// Markdown emits a markdown table instead of bare command lines.
	Markdown bool
	// Render passes markdown through the terminal renderer.
	Render bool
}

// BuildPlan drives a sweep against a recorder, so the plan is exactly what
// `run` would execute, in the same order.
func BuildPlan(ctx context.Context, solver string) ([]tui.PlanEntry, error) {
	var entries []tui.PlanEntry
	hooks := domain.LifecycleHooks{
		OnTrialStart: func(_ context.Context, e *domain.TrialEvent) {
			entries = append(entries, tui.PlanEntry{Trial: e.Trial, Invocation: e.Invocation})
		},
	}
	drv := sweep.New(memory.NewRecorder(), sweep.WithSolver(solver), sweep.WithHooks(hooks))
	if err := drv.Run(ctx); err != nil {
		return nil, err
	}
	return entries, nil
}

// Plan writes the sweep plan to w without starting any solver.
func Plan(ctx context.Context, opts PlanOptions, w io.Writer) error {
	cfg, err := resolveConfig(opts.Dir, opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	solver, err := resolveSolver(cfg)
	if err != nil {
		return err
	}

	entries, err := BuildPlan(ctx, solver.Path)
	if err != nil {
		return err
	}

	if !opts.Markdown {
		return tui.WritePlan(w, entries)
	}

	md := tui.PlanMarkdown(solver.Path, entries)
	if opts.Render {
		rendered, err := tui.NewRenderer()(md)
		if err != nil {
			return fmt.Errorf("render plan: %w", err)
		}
		md = rendered
	}
	_, err = io.WriteString(w, md)
	return err
}
