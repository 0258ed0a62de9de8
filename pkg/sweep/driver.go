package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/aretw0/gridsweep/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a crashed driver can keep others out.
const DefaultLockTTL = 24 * time.Hour

// Driver enumerates a grid and runs the solver once per cell, strictly in order.
type Driver struct {
	invoker  ports.Invoker
	grid     domain.Grid
	template domain.CommandTemplate
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	locker   ports.Locker
	lockTTL  time.Duration
	runID    string
}

// New creates a Driver that runs trials through invoker.
func New(invoker ports.Invoker, opts ...Option) *Driver {
	d := &Driver{
		invoker:  invoker,
		grid:     domain.DefaultGrid(),
		template: domain.NewCommandTemplate(domain.DefaultSolverPath),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		lockTTL:  DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.runID == "" {
		d.runID = uuid.NewString()
	}
	return d
}

// RunID returns the identifier attached to this driver's logs and events.
func (d *Driver) RunID() string {
	return d.runID
}

// Grid returns the grid the driver enumerates.
func (d *Driver) Grid() domain.Grid {
	return d.grid
}

// Template returns the command template.
func (d *Driver) Template() domain.CommandTemplate {
	return d.template
}

// Run executes every trial of the grid, one at a time.
//
// Each invocation blocks until the solver exits. Non-zero exit codes are
// logged and otherwise ignored; a missing solver is one of them. An invoker
// error other than cancellation aborts the sweep and is returned wrapped.
// Cancellation is returned as is.
func (d *Driver) Run(ctx context.Context) (err error) {
	if err := d.grid.Validate(); err != nil {
		return err
	}

	logger := d.logger.With("run_id", d.runID)

	if d.locker != nil {
		key := "sweep:" + d.template.Path
		unlock, lockErr := d.locker.Lock(ctx, key, d.lockTTL)
		if lockErr != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrLockAcquire, key, lockErr)
		}
		logger.Debug("lock acquired", "key", key)
		defer func() {
			// The sweep context may already be canceled; release regardless.
			if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil {
				logger.Warn("failed to release lock", "key", key, "error", uerr)
			}
		}()
	}

	trials := d.grid.Trials()
	total := len(trials)

	logger.Info("sweep started", "solver", d.template.Path, "trials", total)
	d.emitSweep(ctx, domain.EventSweepStart, total, 0, nil)

	completed := 0
	defer func() {
		d.emitSweep(ctx, domain.EventSweepFinish, total, completed, err)
	}()

	for _, trial := range trials {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Info("sweep interrupted", "completed", completed, "trials", total)
			return ctxErr
		}

		inv := d.template.Build(trial.Params)
		log := logger.With("trial", trial.Ordinal, "i", trial.Cell.I, "j", trial.Cell.J)
		log.Debug("invoking solver", "cmd", inv.String())

		event := &domain.TrialEvent{
			EventBase:  d.base(domain.EventTrialStart),
			Trial:      trial,
			Invocation: inv,
			Total:      total,
		}
		if d.hooks.OnTrialStart != nil {
			d.hooks.OnTrialStart(ctx, event)
		}

		status, invErr := d.invoker.Invoke(ctx, inv)

		event.EventBase = d.base(domain.EventTrialFinish)
		event.Status = status
		event.Err = invErr
		if d.hooks.OnTrialFinish != nil {
			d.hooks.OnTrialFinish(ctx, event)
		}

		if invErr != nil {
			if errors.Is(invErr, context.Canceled) || errors.Is(invErr, context.DeadlineExceeded) {
				log.Info("sweep interrupted", "completed", completed, "trials", total)
				return invErr
			}
			log.Error("solver could not be launched", "cmd", inv.String(), "error", invErr)
			return fmt.Errorf("trial %d (%s): %w", trial.Ordinal, inv.String(), invErr)
		}

		completed++
		if !status.Success() {
			log.Warn("solver exited non-zero", "code", status.Code, "cmd", inv.String())
			continue
		}
		log.Debug("solver finished", "code", status.Code)
	}

	logger.Info("sweep finished", "trials", completed)
	return nil
}

func (d *Driver) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		RunID:     d.runID,
	}
}

func (d *Driver) emitSweep(ctx context.Context, t domain.EventType, total, completed int, err error) {
	hook := d.hooks.OnSweepStart
	if t == domain.EventSweepFinish {
		hook = d.hooks.OnSweepFinish
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.SweepEvent{
		EventBase: d.base(t),
		Solver:    d.template.Path,
		Total:     total,
		Completed: completed,
		Err:       err,
	})
}
