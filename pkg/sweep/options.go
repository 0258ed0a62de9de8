package sweep

import (
	"log/slog"
	"time"

	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/aretw0/gridsweep/pkg/ports"
)

// Option defines a functional option for configuring the Driver.
type Option func(*Driver)

// WithGrid replaces the default grid. Intended for tests and embedding;
// the CLI always uses domain.DefaultGrid.
func WithGrid(g domain.Grid) Option {
	return func(d *Driver) {
		d.grid = g
	}
}

// WithTemplate sets the command template used to build invocations.
func WithTemplate(tpl domain.CommandTemplate) Option {
	return func(d *Driver) {
		d.template = tpl
	}
}

// WithSolver is shorthand for WithTemplate(domain.NewCommandTemplate(path)).
func WithSolver(path string) Option {
	return func(d *Driver) {
		d.template = domain.NewCommandTemplate(path)
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Driver) {
		d.hooks = hooks
	}
}

// WithLocker makes the driver hold a lock for the duration of the sweep.
func WithLocker(locker ports.Locker) Option {
	return func(d *Driver) {
		d.locker = locker
	}
}

// WithLockTTL sets the lease requested from the locker. Zero keeps
// DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(d *Driver) {
		if ttl > 0 {
			d.lockTTL = ttl
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(d *Driver) {
		d.runID = id
	}
}
