package process_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/aretw0/gridsweep/pkg/adapters/process"
	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/aretw0/gridsweep/pkg/ports"
	"github.com/aretw0/gridsweep/pkg/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script in a temp dir.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script solvers are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestInvoker_Contract(t *testing.T) {
	ok := writeScript(t, "ok.sh", "exit 0")
	two := writeScript(t, "two.sh", "exit 2")

	inv := process.NewInvoker(process.WithStdout(&bytes.Buffer{}), process.WithStderr(&bytes.Buffer{}))
	ports.RunInvokerContract(t, inv, ports.InvokerFixture{
		Succeeds: domain.Invocation{Path: ok},
		ExitsTwo: domain.Invocation{Path: two},
		Missing:  domain.Invocation{Path: filepath.Join(t.TempDir(), "does-not-exist")},
	})
}

func TestInvoker_Invoke(t *testing.T) {
	t.Run("Passes arguments verbatim", func(t *testing.T) {
		echo := writeScript(t, "echo.sh", `echo "$@"`)
		var out bytes.Buffer
		inv := process.NewInvoker(process.WithStdout(&out))

		tpl := domain.NewCommandTemplate(echo)
		status, err := inv.Invoke(context.Background(), tpl.Build(domain.Params{Scale: 512, Count: 7, Seed: 42}))
		require.NoError(t, err)
		assert.True(t, status.Success())
		assert.Equal(t, "-t 512 -c 7 -s 42", strings.TrimSpace(out.String()))
	})

	t.Run("Runs in base dir with extra env", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, "pwd.sh", `echo "$(pwd) $SOLVER_MODE"`)
		var out bytes.Buffer
		inv := process.NewInvoker(
			process.WithBaseDir(dir),
			process.WithEnv(map[string]string{"SOLVER_MODE": "bench"}),
			process.WithStdout(&out),
		)

		_, err := inv.Invoke(context.Background(), domain.Invocation{Path: script})
		require.NoError(t, err)

		resolved, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		fields := strings.Fields(out.String())
		require.Len(t, fields, 2)
		gotDir, err := filepath.EvalSymlinks(fields[0])
		require.NoError(t, err)
		assert.Equal(t, resolved, gotDir)
		assert.Equal(t, "bench", fields[1])
	})

	t.Run("Solver output is not captured by default", func(t *testing.T) {
		inv := process.NewInvoker()
		script := writeScript(t, "quiet.sh", "exit 0")
		status, err := inv.Invoke(context.Background(), domain.Invocation{Path: script})
		require.NoError(t, err)
		assert.Equal(t, 0, status.Code)
	})

	t.Run("Non-executable file reports 126", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("file modes are not enforced on windows")
		}
		path := filepath.Join(t.TempDir(), "plain.txt")
		require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

		status, err := process.NewInvoker().Invoke(context.Background(), domain.Invocation{Path: path})
		require.NoError(t, err)
		assert.Equal(t, domain.ExitNotExecutable, status.Code)
	})

	t.Run("Missing solver reports 127", func(t *testing.T) {
		status, err := process.NewInvoker().Invoke(context.Background(), domain.Invocation{
			Path: filepath.Join(t.TempDir(), "parallel"),
			Args: []string{"-t", "1", "-c", "0", "-s", "42"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ExitNotFound, status.Code)
	})

	t.Run("Solver not on PATH reports 127", func(t *testing.T) {
		status, err := process.NewInvoker().Invoke(context.Background(), domain.Invocation{Path: "gridsweep-no-such-solver"})
		require.NoError(t, err)
		assert.Equal(t, domain.ExitNotFound, status.Code)
	})

	t.Run("Missing working directory is a launch error", func(t *testing.T) {
		script := writeScript(t, "ok.sh", "exit 0")
		inv := process.NewInvoker(process.WithBaseDir(filepath.Join(t.TempDir(), "gone")))

		_, err := inv.Invoke(context.Background(), domain.Invocation{Path: script})
		assert.ErrorIs(t, err, domain.ErrLaunch)
	})
}

func TestInvoker_SweepContinuesWithoutSolver(t *testing.T) {
	var issued int
	hooks := domain.LifecycleHooks{
		OnTrialStart: func(context.Context, *domain.TrialEvent) { issued++ },
	}
	drv := sweep.New(process.NewInvoker(),
		sweep.WithSolver(filepath.Join(t.TempDir(), "parallel")),
		sweep.WithHooks(hooks),
	)

	require.NoError(t, drv.Run(context.Background()))
	assert.Equal(t, 195, issued)
}
