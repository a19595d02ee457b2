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
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/vijayraavi/azure-storage-azcopy/common"
	"github.com/vijayraavi/azure-storage-azcopy/config"
)

// ConfigResolver is satisfied by *config.Resolver.
type ConfigResolver interface {
	Resolve() (config.Config, error)
}

// Orchestrator runs the whole pipeline: log cleanup, configuration, initialization,
// every registered group, and log cleanup again.
type Orchestrator struct {
	Resolver    ConfigResolver
	Initializer Initializer
	Registry    *Registry
	Runner      *Runner
	// Filter restricts the scenarios by Group/Scenario ID; nil runs everything.
	Filter *regexp.Regexp
	// WorkingDir is where *.log files are purged; defaults to the current directory.
	WorkingDir string
	Out        io.Writer
	Logger     common.ILogger
}

func (o *Orchestrator) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o *Orchestrator) logger() common.ILogger {
	if o.Logger == nil {
		return common.NullLogger()
	}
	return o.Logger
}

func (o *Orchestrator) workingDir() string {
	if o.WorkingDir == "" {
		return "."
	}
	return o.WorkingDir
}

// Run executes the pipeline and returns the result; RunResult.ExitCode gives the process status.
func (o *Orchestrator) Run(ctx context.Context) RunResult {
	_, _ = fmt.Fprintln(o.out(), "Smoke tests starting...")

	removed := CleanupLogFiles(o.workingDir())
	common.Logf(o.logger(), common.LogDebug, "removed %d log files before the run", removed)
	defer func() {
		removed := CleanupLogFiles(o.workingDir())
		common.Logf(o.logger(), common.LogDebug, "removed %d log files after the run", removed)
	}()

	cfg, err := o.Resolver.Resolve()
	if err != nil {
		common.Logf(o.logger(), common.LogError, "failed to resolve the test suite configuration: %v", err)
		_, _ = fmt.Fprintf(o.out(), "failed to resolve the test suite configuration: %v\n", err)
		return RunResult{SetupErr: err}
	}

	ws, err := o.Initializer.InitializeTestSuite(ctx, cfg)
	if err != nil {
		common.Logf(o.logger(), common.LogError, "test suite initialization failed: %v", err)
		_, _ = fmt.Fprintln(o.out(), "failed to initialize the test suite with given user input")
		return RunResult{SetupErr: err}
	}

	runner := o.Runner
	if runner == nil {
		runner = NewRunner(NewConsoleReporter(o.out(), false), o.logger())
	}
	return runner.Run(ctx, o.Registry.Filter(o.Filter), ws)
}
