// Copyright © Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package smoketest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// AzCopyCommand is one azcopy invocation. Flag names are only spelled out by the scenarios,
// so a renamed flag is a one place change there.
type AzCopyCommand struct {
	Verb    string
	Targets []string
	flags   map[string]string
}

func NewAzCopyCommand(verb string, targets ...string) *AzCopyCommand {
	return &AzCopyCommand{Verb: verb, Targets: targets, flags: make(map[string]string)}
}

// SetFlag records --name=value; the value is formatted with fmt.Sprint.
func (c *AzCopyCommand) SetFlag(name string, value interface{}) *AzCopyCommand {
	c.flags[name] = fmt.Sprint(value)
	return c
}

func (c *AzCopyCommand) Recursive() *AzCopyCommand {
	return c.SetFlag("recursive", true)
}

// Args renders the command line. Flags are sorted so the same command always renders the same way.
func (c *AzCopyCommand) Args() []string {
	verb := strings.Fields(c.Verb)
	args := append(verb, c.Targets...)

	keys := make([]string, 0, len(c.flags))
	for k := range c.flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, fmt.Sprintf("--%s=%s", k, c.flags[k]))
	}

	return append(args, "--output-type=json")
}

func (c *AzCopyCommand) String() string {
	return "azcopy " + strings.Join(c.Args(), " ")
}

// AzCopyRunner executes the azcopy binary under test.
type AzCopyRunner struct {
	Path   string
	Dir    string
	Env    []string
	Logger common.ILogger
}

// AzCopyResult is what an azcopy invocation left behind. A non-zero exit code is not an error
// of the runner; scenarios decide whether they expected it.
type AzCopyResult struct {
	Command  string
	ExitCode int
	Output   common.JsonOutput
	Stderr   string
}

// Run starts azcopy and waits for it. The error is only non-nil when the process could not be run at all.
func (r *AzCopyRunner) Run(ctx context.Context, cmd *AzCopyCommand) (*AzCopyResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = common.NullLogger()
	}

	c := exec.CommandContext(ctx, r.Path, cmd.Args()...)
	c.Dir = r.Dir
	c.Env = append(os.Environ(), r.Env...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	common.Logf(logger, common.LogInfo, "running %s", cmd.String())
	runErr := c.Run()

	result := &AzCopyResult{
		Command: cmd.String(),
		Output:  common.ParseJsonOutput(stdout.String()),
		Stderr:  stderr.String(),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, errors.Wrapf(runErr, "failed to run %s", r.Path)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	common.Logf(logger, common.LogDebug, "azcopy exited with code %d", result.ExitCode)
	if result.Stderr != "" {
		common.Logf(logger, common.LogDebug, "azcopy stderr: %s", result.Stderr)
	}
	return result, nil
}

func (r *AzCopyResult) describe() string {
	var sb strings.Builder
	sb.WriteString(r.Command)
	fmt.Fprintf(&sb, " (exit code %d)", r.ExitCode)
	for _, msg := range r.Output.ErrorMessages() {
		sb.WriteString("\n  error: ")
		sb.WriteString(msg)
	}
	if r.Stderr != "" {
		sb.WriteString("\n  stderr: ")
		sb.WriteString(strings.TrimSpace(r.Stderr))
	}
	return sb.String()
}

// Summary returns the end of job summary of a copy, sync or remove.
func (r *AzCopyResult) Summary() (common.JobSummary, error) {
	return r.Output.EndOfJobSummary()
}

// ExpectSuccess checks the exit code only; use it for verbs that do not run a job, such as list.
func (r *AzCopyResult) ExpectSuccess() error {
	if r.ExitCode != 0 {
		return errors.Errorf("expected azcopy to succeed: %s", r.describe())
	}
	return nil
}

// ExpectJobCompleted checks that the job completed without failed transfers. A negative
// expectedTransfers skips the transfer count check.
func (r *AzCopyResult) ExpectJobCompleted(expectedTransfers int) error {
	if err := r.ExpectSuccess(); err != nil {
		return err
	}

	summary, err := r.Summary()
	if err != nil {
		return errors.Wrap(err, r.describe())
	}
	if !summary.JobStatus.IsSuccess() {
		return errors.Errorf("expected job status %s, got %s: %s", common.JobStatusCompleted, summary.JobStatus, r.describe())
	}
	if summary.TransfersFailed != 0 {
		return errors.Errorf("%d transfers failed: %s", summary.TransfersFailed, r.describe())
	}
	if expectedTransfers >= 0 && int(summary.TransfersCompleted) != expectedTransfers {
		return errors.Errorf("expected %d transfers to complete, %d did: %s",
			expectedTransfers, summary.TransfersCompleted, r.describe())
	}
	return nil
}

// ExpectFailure passes when azcopy exited non-zero or the job did not complete cleanly.
func (r *AzCopyResult) ExpectFailure() error {
	if r.ExitCode != 0 {
		return nil
	}
	summary, err := r.Summary()
	if err == nil && (summary.TransfersFailed > 0 || !summary.JobStatus.IsSuccess()) {
		return nil
	}
	return errors.Errorf("expected azcopy to fail: %s", r.describe())
}
