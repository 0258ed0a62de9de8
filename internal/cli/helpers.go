package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/gridsweep/internal/config"
	"github.com/aretw0/gridsweep/internal/logging"
	"github.com/aretw0/gridsweep/pkg/adapters/process"
	"github.com/aretw0/gridsweep/pkg/domain"
)

// resolveConfig applies defaults, then the config file, then flag overrides.
func resolveConfig(dir, configPath string, overrides map[string]any) (config.Config, error) {
	if dir == "" {
		dir = "."
	}
	path, required := configPath, configPath != ""
	if !required {
		path = filepath.Join(dir, config.DefaultFileName)
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}
	if len(overrides) > 0 {
		if err := config.Decode(overrides, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid flags: %w", err)
		}
	}

	switch {
	case cfg.Dir == "":
		cfg.Dir = dir
	case !filepath.IsAbs(cfg.Dir):
		cfg.Dir = filepath.Join(dir, cfg.Dir)
	}

	if cfg.SolverFile != "" {
		if cfg.Solver != "" {
			return cfg, errors.New("solver and solver_file are mutually exclusive")
		}
		if !filepath.IsAbs(cfg.SolverFile) {
			cfg.SolverFile = filepath.Join(dir, cfg.SolverFile)
		}
	} else if cfg.Solver == "" {
		cfg.Solver = domain.DefaultSolverPath
	}
	return cfg, nil
}

// resolveSolver returns the solver the sweep runs. Without a solver_file it
// is built from the config; otherwise the file supplies the path, and its
// dir and env take precedence over the config's.
func resolveSolver(cfg config.Config) (process.Solver, error) {
	base := process.Solver{Path: cfg.Solver, Dir: cfg.Dir, Environment: cfg.Env}
	if cfg.SolverFile == "" {
		return base, nil
	}

	s, err := process.LoadSolver(cfg.SolverFile)
	if err != nil {
		return s, err
	}
	if s.Dir == "" {
		s.Dir = base.Dir
	}
	env := make(map[string]string, len(base.Environment)+len(s.Environment))
	for k, v := range base.Environment {
		env[k] = v
	}
	for k, v := range s.Environment {
		env[k] = v
	}
	s.Environment = env
	return s, nil
}

// createLogger configures the application logger from the resolved config.
func createLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, level, format), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSweepStart: func(ctx context.Context, e *domain.SweepEvent) {
			logger.Debug("Sweep Start", "run_id", e.RunID, "solver", e.Solver, "total", e.Total)
		},
		OnTrialStart: func(ctx context.Context, e *domain.TrialEvent) {
			logger.Debug("Trial Start", "run_id", e.RunID, "trial", e.Trial.Ordinal, "cmd", e.Invocation.String())
		},
		OnTrialFinish: func(ctx context.Context, e *domain.TrialEvent) {
			if e.Err != nil {
				logger.Debug("Trial Return (Error)", "trial", e.Trial.Ordinal, "err", e.Err)
			} else {
				logger.Debug("Trial Return", "trial", e.Trial.Ordinal, "code", e.Status.Code)
			}
		},
		OnSweepFinish: func(ctx context.Context, e *domain.SweepEvent) {
			logger.Debug("Sweep Finish", "run_id", e.RunID, "completed", e.Completed, "total", e.Total)
		},
	}
}
