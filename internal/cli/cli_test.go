package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/gridsweep/pkg/adapters/memory"
	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gridsweep.yaml"), []byte(content), 0o644))
}

func TestResolveConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := resolveConfig(dir, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "./parallel", cfg.Solver)
		assert.Equal(t, dir, cfg.Dir)
		assert.Equal(t, 24*time.Hour, cfg.LockTTL)
	})

	t.Run("Flags override file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "solver: ./from-file\ndir: runs\nlog_level: warn\n")

		cfg, err := resolveConfig(dir, "", map[string]any{"solver": "./from-flag"})
		require.NoError(t, err)
		assert.Equal(t, "./from-flag", cfg.Solver)
		assert.Equal(t, filepath.Join(dir, "runs"), cfg.Dir)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("Explicit config must exist", func(t *testing.T) {
		_, err := resolveConfig(t.TempDir(), "/nonexistent/gridsweep.yaml", nil)
		assert.Error(t, err)
	})

	t.Run("Unknown override", func(t *testing.T) {
		_, err := resolveConfig(t.TempDir(), "", map[string]any{"inner_max": 3})
		assert.ErrorContains(t, err, "invalid flags")
	})

	t.Run("Solver file is resolved against the project dir", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "solver_file: solvers/gpu.yaml\n")

		cfg, err := resolveConfig(dir, "", nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "solvers", "gpu.yaml"), cfg.SolverFile)
		assert.Empty(t, cfg.Solver)
	})

	t.Run("Solver and solver file conflict", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "solver_file: gpu.yaml\n")

		_, err := resolveConfig(dir, "", map[string]any{"solver": "./parallel"})
		assert.ErrorContains(t, err, "mutually exclusive")
	})
}

func writeSolverFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "solvers", "gpu.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveSolver(t *testing.T) {
	t.Run("From config", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := resolveConfig(dir, "", map[string]any{"solver": "./tsp"})
		require.NoError(t, err)

		s, err := resolveSolver(cfg)
		require.NoError(t, err)
		assert.Equal(t, "./tsp", s.Path)
		assert.Equal(t, dir, s.Dir)
	})

	t.Run("From solver file", func(t *testing.T) {
		dir := t.TempDir()
		writeSolverFile(t, dir, "path: ./bench.sh\ndir: ../work\nenv:\n  MODE: gpu\n")
		writeConfig(t, dir, "solver_file: solvers/gpu.yaml\nenv:\n  MODE: cpu\n  TRACE: \"1\"\n")

		cfg, err := resolveConfig(dir, "", nil)
		require.NoError(t, err)
		s, err := resolveSolver(cfg)
		require.NoError(t, err)
		assert.Equal(t, "./bench.sh", s.Path)
		assert.Equal(t, filepath.Join(dir, "work"), s.Dir)
		assert.Equal(t, map[string]string{"MODE": "gpu", "TRACE": "1"}, s.Environment)
	})

	t.Run("Missing solver file", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := resolveConfig(dir, "", map[string]any{"solver_file": "nope.yaml"})
		require.NoError(t, err)

		_, err = resolveSolver(cfg)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestPlan(t *testing.T) {
	dir := t.TempDir()

	t.Run("Command lines", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Plan(context.Background(), PlanOptions{Dir: dir}, &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 195)
		assert.Equal(t, "./parallel -t 1 -c 0 -s 42", lines[0])
		assert.Equal(t, "./parallel -t 16384 -c 0 -s 42", lines[14])
		assert.Equal(t, "./parallel -t 1 -c 1 -s 42", lines[15])
		assert.Equal(t, "./parallel -t 16384 -c 12 -s 42", lines[194])
	})

	t.Run("Markdown", func(t *testing.T) {
		var out bytes.Buffer
		opts := PlanOptions{Dir: dir, Markdown: true, Overrides: map[string]any{"solver": "./tsp"}}
		require.NoError(t, Plan(context.Background(), opts, &out))
		assert.Contains(t, out.String(), "195 trials")
		assert.Contains(t, out.String(), "`./tsp -t 8192 -c 12 -s 42`")
	})
}

func TestPlan_SolverFile(t *testing.T) {
	dir := t.TempDir()
	writeSolverFile(t, dir, "path: /opt/tsp/parallel\n")

	var out bytes.Buffer
	opts := PlanOptions{Dir: dir, Overrides: map[string]any{"solver_file": "solvers/gpu.yaml"}}
	require.NoError(t, Plan(context.Background(), opts, &out))
	assert.True(t, strings.HasPrefix(out.String(), "/opt/tsp/parallel -t 1 -c 0 -s 42\n"))
}

func TestRunSweep_DryRunSkipsLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	var stdout bytes.Buffer
	err = RunSweep(context.Background(), RunOptions{
		Dir:       t.TempDir(),
		DryRun:    true,
		Overrides: map[string]any{"redis_addr": addr},
		Stdout:    &stdout,
		Stderr:    &bytes.Buffer{},
	})
	require.NoError(t, err, "a dry run must not dial redis")
	assert.Len(t, strings.Split(strings.TrimSpace(stdout.String()), "\n"), 195)
}

func TestRunSweep_SolverFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script solver")
	}
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	require.NoError(t, os.MkdirAll(work, 0o755))
	script := "#!/bin/sh\necho \"$MODE $@\" >> calls.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(work, "bench.sh"), []byte(script), 0o755))
	writeSolverFile(t, dir, "path: ./bench.sh\ndir: ../work\nenv:\n  MODE: gpu\n")
	writeConfig(t, dir, "solver_file: solvers/gpu.yaml\n")

	err := RunSweep(context.Background(), RunOptions{Dir: dir, Quiet: true, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(work, "calls.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 195)
	assert.Equal(t, "gpu -t 1 -c 0 -s 42", lines[0])
}

func TestRunSweep_DryRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := RunSweep(context.Background(), RunOptions{
		Dir:    t.TempDir(),
		DryRun: true,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 195)
	assert.Contains(t, stderr.String(), "sweep finished")
}

func TestRunSweep_InjectedInvoker(t *testing.T) {
	rec := memory.NewRecorder()
	dir := t.TempDir()
	writeConfig(t, dir, "solver: ./bin/solver\nlog_format: json\n")

	var stderr bytes.Buffer
	err := RunSweep(context.Background(), RunOptions{Dir: dir, Invoker: rec, Stderr: &stderr})
	require.NoError(t, err)

	invs := rec.Invocations()
	require.Len(t, invs, 195)
	assert.Equal(t, "./bin/solver", invs[0].Path)
	assert.Contains(t, stderr.String(), `"msg":"sweep started"`)
}

func TestRunSweep_MissingSolverContinues(t *testing.T) {
	var stderr bytes.Buffer
	err := RunSweep(context.Background(), RunOptions{
		Dir:       t.TempDir(),
		Overrides: map[string]any{"solver": "./not-built-yet"},
		Quiet:     true,
		Stderr:    &stderr,
	})
	require.NoError(t, err)
	assert.Equal(t, 195, strings.Count(stderr.String(), "code=127"))
	assert.Contains(t, stderr.String(), "sweep finished")
}

func TestRunSweep_MissingWorkdirFails(t *testing.T) {
	var stderr bytes.Buffer
	err := RunSweep(context.Background(), RunOptions{
		Dir:       t.TempDir(),
		Overrides: map[string]any{"dir": "gone"},
		Quiet:     true,
		Stderr:    &stderr,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLaunch)
	assert.Contains(t, err.Error(), "trial 1")
}

func TestRunSweep_RealSolver(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script solver")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"$@\" >> calls.log\n[ \"$2\" = 16384 ] && exit 1\nexit 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parallel"), []byte(script), 0o755))

	var stderr bytes.Buffer
	err := RunSweep(context.Background(), RunOptions{Dir: dir, Quiet: true, Stderr: &stderr})
	require.NoError(t, err, "non-zero exits must not stop the sweep")

	data, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 195)
	assert.Equal(t, "-t 1 -c 0 -s 42", lines[0])
	assert.Equal(t, "-t 16384 -c 12 -s 42", lines[194])
	assert.Equal(t, 13, strings.Count(stderr.String(), "solver exited non-zero"))
}

func TestRunSweep_RedisLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	key := "gridsweep:lock:sweep:./parallel"
	held := 0
	var ttl time.Duration
	rec := memory.NewRecorder(memory.WithStatusFunc(func(int, domain.Invocation) (domain.ExitStatus, error) {
		if mr.Exists(key) {
			held++
			ttl = mr.TTL(key)
		}
		return domain.ExitStatus{}, nil
	}))

	err = RunSweep(context.Background(), RunOptions{
		Dir:       t.TempDir(),
		Overrides: map[string]any{"redis_addr": mr.Addr(), "lock_ttl": "1h"},
		Invoker:   rec,
		Stderr:    &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Equal(t, 195, held)
	assert.Equal(t, time.Hour, ttl, "lease comes from lock_ttl")
	assert.False(t, mr.Exists(key))
}

func TestRunSweep_BadLogLevel(t *testing.T) {
	err := RunSweep(context.Background(), RunOptions{
		Dir:       t.TempDir(),
		Overrides: map[string]any{"log_level": "chatty"},
		Invoker:   memory.NewRecorder(),
	})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestRunSweep_Metrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := RunSweep(ctx, RunOptions{
		Dir:       t.TempDir(),
		Overrides: map[string]any{"metrics_addr": "127.0.0.1:0"},
		Invoker:   memory.NewRecorder(),
		Stderr:    &bytes.Buffer{},
	})
	require.NoError(t, err)
}
