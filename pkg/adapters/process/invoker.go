package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"runtime"
	"syscall"
	"time"

	"github.com/aretw0/gridsweep/pkg/domain"
)

// Invoker implements ports.Invoker by starting local processes.
// The solver inherits the driver's stdout and stderr unless overridden;
// its output is never read by the driver.
type Invoker struct {
	baseDir string
	env     map[string]string
	stdout  io.Writer
	stderr  io.Writer
	grace   time.Duration
}

// DefaultGracePeriod is how long a canceled solver may take to exit after
// being interrupted before it is killed.
const DefaultGracePeriod = 5 * time.Second

// InvokerOption configures the invoker.
type InvokerOption func(*Invoker)

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) InvokerOption {
	return func(i *Invoker) {
		i.baseDir = dir
	}
}

// WithEnv adds variables to the environment inherited from the driver.
func WithEnv(env map[string]string) InvokerOption {
	return func(i *Invoker) {
		for k, v := range env {
			i.env[k] = v
		}
	}
}

// WithStdout redirects the solver's standard output.
func WithStdout(w io.Writer) InvokerOption {
	return func(i *Invoker) {
		i.stdout = w
	}
}

// WithStderr redirects the solver's standard error.
func WithStderr(w io.Writer) InvokerOption {
	return func(i *Invoker) {
		i.stderr = w
	}
}

// WithGracePeriod sets the interrupt-to-kill delay used on cancellation.
func WithGracePeriod(d time.Duration) InvokerOption {
	return func(i *Invoker) {
		i.grace = d
	}
}

// WithSolver applies the directory and environment of a solver description.
func WithSolver(s Solver) InvokerOption {
	return func(i *Invoker) {
		if s.Dir != "" {
			i.baseDir = s.Dir
		}
		for k, v := range s.Environment {
			i.env[k] = v
		}
	}
}

// NewInvoker creates a new process invoker.
func NewInvoker(opts ...InvokerOption) *Invoker {
	i := &Invoker{
		env:    make(map[string]string),
		stdout: os.Stdout,
		stderr: os.Stderr,
		grace:  DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Invoke runs the command and waits for it to exit.
//
// An exit with a non-zero code is returned as a status with a nil error.
// A process killed by a signal reports code -1. A solver that does not exist
// reports 127 and one that cannot be executed reports 126, as a shell would.
// Other start failures wrap domain.ErrLaunch.
func (i *Invoker) Invoke(ctx context.Context, inv domain.Invocation) (domain.ExitStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExitStatus{}, err
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = i.baseDir
	cmd.Stdout = i.stdout
	cmd.Stderr = i.stderr
	// On cancellation, interrupt first (as a terminal Ctrl-C would), then kill.
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = i.grace
	if len(i.env) > 0 {
		env := cmd.Environ()
		for k, v := range i.env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		cmd.Env = env
	}

	if err := cmd.Start(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.ExitStatus{}, ctxErr
		}
		if code, ok := startFailureCode(err); ok {
			return domain.ExitStatus{Code: code}, nil
		}
		return domain.ExitStatus{}, fmt.Errorf("%w: %s: %v", domain.ErrLaunch, inv.Path, err)
	}

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return exitStatus(cmd), ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return domain.ExitStatus{Code: exitErr.ExitCode()}, nil
		}
		// I/O copy failures on redirected streams; the process itself ran.
		return exitStatus(cmd), nil
	}
	return domain.ExitStatus{Code: 0}, nil
}

// startFailureCode maps a Start error caused by the solver binary itself to
// the exit code a shell reports for it.
func startFailureCode(err error) (int, bool) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Op == "chdir" {
		return 0, false
	}
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return domain.ExitNotFound, true
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.ENOEXEC):
		return domain.ExitNotExecutable, true
	}
	return 0, false
}

func exitStatus(cmd *exec.Cmd) domain.ExitStatus {
	if cmd.ProcessState == nil {
		return domain.ExitStatus{Code: -1}
	}
	return domain.ExitStatus{Code: cmd.ProcessState.ExitCode()}
}
