package smoketest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

func mixedGroup(calls *[]string) Group {
	record := func(name string, err error) RunFunc {
		return func(sc *ScenarioContext) error {
			*calls = append(*calls, sc.Group+"/"+name)
			return err
		}
	}
	return Group{
		Name: "Mixed",
		Scenarios: []Scenario{
			{Name: "passes", Run: record("passes", nil)},
			{Name: "fails", Run: record("fails", errors.New("blob size mismatch"))},
			{Name: "skips", Run: record("skips", Skip("needs a premium account"))},
			{Name: "panics", Run: func(sc *ScenarioContext) error {
				*calls = append(*calls, sc.Group+"/panics")
				panic("boom")
			}},
			{Name: "after", Run: record("after", nil)},
		},
	}
}

func TestRunnerOutcomes(t *testing.T) {
	a := assert.New(t)
	var calls []string
	runner := NewRunner(nil, nil)

	result := runner.RunGroup(context.Background(), mixedGroup(&calls), nil)

	a.Equal([]string{"Mixed/passes", "Mixed/fails", "Mixed/skips", "Mixed/panics", "Mixed/after"}, calls)
	require.Len(t, result.Results, 5)
	a.Equal(EOutcome.Passed(), result.Results[0].Outcome)
	a.Equal(EOutcome.Failed(), result.Results[1].Outcome)
	a.EqualError(result.Results[1].Err, "blob size mismatch")
	a.Equal(EOutcome.Skipped(), result.Results[2].Outcome)
	a.Equal("needs a premium account", result.Results[2].SkipReason)
	a.Equal(EOutcome.Errored(), result.Results[3].Outcome)
	a.Contains(result.Results[3].Err.Error(), "panic: boom")
	a.Equal(EOutcome.Passed(), result.Results[4].Outcome)

	a.Equal(Tally{Passed: 2, Failed: 1, Errored: 1, Skipped: 1}, result.Tally())
}

func TestRunnerContinuesAfterFailingGroup(t *testing.T) {
	var calls []string
	failing := Group{Name: "First", Scenarios: []Scenario{{Name: "bad", Run: func(*ScenarioContext) error {
		calls = append(calls, "First/bad")
		return errors.New("nope")
	}}}}
	passing := Group{Name: "Second", Scenarios: []Scenario{{Name: "good", Run: func(*ScenarioContext) error {
		calls = append(calls, "Second/good")
		return nil
	}}}}

	result := NewRunner(nil, nil).Run(context.Background(), []Group{failing, passing}, nil)

	assert.Equal(t, []string{"First/bad", "Second/good"}, calls)
	assert.Equal(t, common.EExitCode.TestFailure(), result.ExitCode())
	assert.Equal(t, 2, result.Tally().Ran())
}

func TestRunnerSkipsAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	g := Group{Name: "G", Scenarios: []Scenario{{Name: "s", Run: func(*ScenarioContext) error {
		called = true
		return nil
	}}}}

	result := NewRunner(nil, nil).RunGroup(ctx, g, nil)
	assert.False(t, called)
	assert.Equal(t, EOutcome.Skipped(), result.Results[0].Outcome)
}

func TestConsoleReporterOutput(t *testing.T) {
	a := assert.New(t)
	var calls []string
	var buf bytes.Buffer
	runner := NewRunner(NewConsoleReporter(&buf, true), nil)

	runner.Run(context.Background(), []Group{mixedGroup(&calls)}, nil)
	out := buf.String()

	a.Contains(out, "passes (Mixed) ... ok\n")
	a.Contains(out, "fails (Mixed) ... FAIL\n")
	a.Contains(out, "skips (Mixed) ... skipped 'needs a premium account'\n")
	a.Contains(out, "panics (Mixed) ... ERROR\n")
	a.Contains(out, separator1+"\nFAIL: fails (Mixed)\n"+separator2+"\nblob size mismatch\n")
	a.Contains(out, "ERROR: panics (Mixed)")
	a.Contains(out, "Ran 5 tests in ")
	a.Contains(out, "FAILED (failures=1, errors=1, skipped=1)")
	a.Contains(out, "TOTAL")
}

func TestConsoleReporterAllPassed(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(NewConsoleReporter(&buf, true), nil)
	g := Group{Name: "Good", Scenarios: []Scenario{{Name: "only", Run: noop}}}

	result := runner.Run(context.Background(), []Group{g}, nil)

	assert.Equal(t, common.EExitCode.Success(), result.ExitCode())
	assert.Contains(t, buf.String(), "Ran 1 test in ")
	assert.True(t, strings.Contains(buf.String(), "\nOK\n"))
}

func TestConsoleReporterRedactsSignatures(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(NewConsoleReporter(&buf, true), nil)
	g := Group{Name: "Leaky", Scenarios: []Scenario{{Name: "fails", Run: func(*ScenarioContext) error {
		return Failf("copy https://acct.blob.core.windows.net/c?sv=2020&sig=c2VjcmV0 failed")
	}}}}

	runner.Run(context.Background(), []Group{g}, nil)

	assert.NotContains(t, buf.String(), "c2VjcmV0")
	assert.Contains(t, buf.String(), "sig=-REDACTED-")
}

func TestConsoleReporterLinesSurviveInterleavedLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewHarnessLogger(common.LogInfo, &buf)
	runner := NewRunner(NewConsoleReporter(&buf, true), logger)
	g := Group{Name: "G", Scenarios: []Scenario{{Name: "S", Run: func(sc *ScenarioContext) error {
		common.Logf(logger, common.LogInfo, "running azcopy list https://a/c?sig=x --output-type=json")
		return nil
	}}}}

	runner.Run(context.Background(), []Group{g}, nil)
	out := buf.String()

	assert.Contains(t, out, "\nS (G) ... ok\n")
	assert.NotContains(t, out, "S (G) ... 2")
}

func TestExitCodeMapping(t *testing.T) {
	a := assert.New(t)
	passed := GroupResult{Results: []ScenarioResult{{Outcome: EOutcome.Passed()}, {Outcome: EOutcome.Skipped()}}}
	errored := GroupResult{Results: []ScenarioResult{{Outcome: EOutcome.Errored()}}}

	a.Equal(common.EExitCode.Success(), RunResult{}.ExitCode())
	a.Equal(common.EExitCode.Success(), RunResult{Groups: []GroupResult{passed}}.ExitCode())
	a.Equal(common.EExitCode.TestFailure(), RunResult{Groups: []GroupResult{passed, errored}}.ExitCode())
	a.Equal(common.EExitCode.RuntimeError(), RunResult{SetupErr: errors.New("x")}.ExitCode())
}

func TestSkipReasonSeesThroughWrapping(t *testing.T) {
	reason, ok := SkipReason(Skip("later"))
	assert.True(t, ok)
	assert.Equal(t, "later", reason)

	_, ok = SkipReason(errors.New("plain"))
	assert.False(t, ok)
	_, ok = SkipReason(nil)
	assert.False(t, ok)

	assert.NoError(t, Expect(true, "unused"))
	assert.EqualError(t, Expect(false, "want %d", 3), "want 3")
}
