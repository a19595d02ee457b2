package smoketest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayraavi/azure-storage-azcopy/common"
	"github.com/vijayraavi/azure-storage-azcopy/config"
)

type stubResolver struct {
	cfg config.Config
	err error
}

func (s stubResolver) Resolve() (config.Config, error) { return s.cfg, s.err }

type stubInitializer struct {
	ws    *Workspace
	err   error
	calls int
}

func (s *stubInitializer) InitializeTestSuite(context.Context, config.Config) (*Workspace, error) {
	s.calls++
	return s.ws, s.err
}

func writeLogFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("log"), 0644))
	}
}

func remainingLogFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	return matches
}

func countingRegistry(invocations *int, failing bool) *Registry {
	r := NewRegistry()
	r.Register("First", Scenario{Name: "s", Run: func(*ScenarioContext) error {
		*invocations++
		if failing {
			return errors.New("failed on purpose")
		}
		return nil
	}})
	r.Register("Second", Scenario{Name: "s", Run: func(*ScenarioContext) error {
		*invocations++
		return nil
	}})
	return r
}

func TestOrchestratorInitializationFailureRunsNoGroups(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	writeLogFiles(t, dir, "a.log", "b.log")

	invocations := 0
	var out bytes.Buffer
	o := &Orchestrator{
		Resolver:    stubResolver{},
		Initializer: &stubInitializer{err: errors.New("no such executable")},
		Registry:    countingRegistry(&invocations, false),
		WorkingDir:  dir,
		Out:         &out,
	}

	result := o.Run(context.Background())

	a.Equal(0, invocations)
	a.Empty(result.Groups)
	a.Equal(common.EExitCode.RuntimeError(), result.ExitCode())
	a.Contains(out.String(), "failed to initialize the test suite with given user input")
	a.Empty(remainingLogFiles(t, dir))
}

func TestOrchestratorConfigurationFailureNeverInitializes(t *testing.T) {
	invocations := 0
	initializer := &stubInitializer{ws: &Workspace{}}
	o := &Orchestrator{
		Resolver:    stubResolver{err: config.ErrPlatformNotFound},
		Initializer: initializer,
		Registry:    countingRegistry(&invocations, false),
		WorkingDir:  t.TempDir(),
		Out:         &bytes.Buffer{},
	}

	result := o.Run(context.Background())

	assert.Equal(t, 0, initializer.calls)
	assert.Equal(t, 0, invocations)
	assert.True(t, errors.Is(result.SetupErr, config.ErrPlatformNotFound))
	assert.Equal(t, common.EExitCode.RuntimeError(), result.ExitCode())
}

func TestOrchestratorRemovesLogsEvenWhenGroupsFail(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	writeLogFiles(t, dir, "before.log")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	invocations := 0
	registry := countingRegistry(&invocations, true)
	registry.Register("WritesLogs", Scenario{Name: "s", Run: func(*ScenarioContext) error {
		writeLogFiles(t, dir, "during.log")
		return errors.New("also failing")
	}})

	var out bytes.Buffer
	o := &Orchestrator{
		Resolver:    stubResolver{},
		Initializer: &stubInitializer{ws: &Workspace{Dir: t.TempDir()}},
		Registry:    registry,
		Runner:      NewRunner(NewConsoleReporter(&out, true), nil),
		WorkingDir:  dir,
		Out:         &out,
	}

	result := o.Run(context.Background())

	a.Equal(2, invocations)
	a.Len(result.Groups, 3)
	a.Equal(common.EExitCode.TestFailure(), result.ExitCode())
	a.Empty(remainingLogFiles(t, dir))
	a.FileExists(filepath.Join(dir, "keep.txt"))
	a.Contains(out.String(), "Smoke tests starting...")
}

func TestOrchestratorFilter(t *testing.T) {
	invocations := 0
	o := &Orchestrator{
		Resolver:    stubResolver{},
		Initializer: &stubInitializer{ws: &Workspace{}},
		Registry:    countingRegistry(&invocations, false),
		Runner:      NewRunner(nil, nil),
		WorkingDir:  t.TempDir(),
		Out:         &bytes.Buffer{},
	}
	o.Filter = mustCompile(t, "^Second/")

	result := o.Run(context.Background())
	assert.Equal(t, 1, invocations)
	assert.Equal(t, common.EExitCode.Success(), result.ExitCode())
}

func TestCleanupLogFilesIgnoresMissingDirectory(t *testing.T) {
	assert.Equal(t, 0, CleanupLogFiles(filepath.Join(t.TempDir(), "missing")))

	dir := t.TempDir()
	writeLogFiles(t, dir, "one.log", "two.log")
	assert.Equal(t, 2, CleanupLogFiles(dir))
	assert.Equal(t, 0, CleanupLogFiles(dir))
}
