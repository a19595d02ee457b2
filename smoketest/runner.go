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
	"runtime/debug"
	"time"

	"github.com/pkg/errors"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// Runner executes groups one after another, and the scenarios of a group in declared order.
// A failing scenario or group never stops the ones after it.
type Runner struct {
	Reporter Reporter
	Logger   common.ILogger

	now func() time.Time
}

func NewRunner(reporter Reporter, logger common.ILogger) *Runner {
	return &Runner{Reporter: reporter, Logger: logger}
}

func (r *Runner) reporter() Reporter {
	if r.Reporter == nil {
		return nullReporter{}
	}
	return r.Reporter
}

func (r *Runner) logger() common.ILogger {
	if r.Logger == nil {
		return common.NullLogger()
	}
	return r.Logger
}

func (r *Runner) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

// Run executes every group against the workspace and reports the totals.
func (r *Runner) Run(ctx context.Context, groups []Group, ws *Workspace) RunResult {
	start := r.clock()
	result := RunResult{}

	for _, g := range groups {
		result.Groups = append(result.Groups, r.RunGroup(ctx, g, ws))
	}

	result.Duration = r.clock().Sub(start)
	r.reporter().RunFinished(result)
	return result
}

// RunGroup executes the scenarios of one group.
func (r *Runner) RunGroup(ctx context.Context, g Group, ws *Workspace) GroupResult {
	start := r.clock()
	result := GroupResult{Name: g.Name}
	common.Logf(r.logger(), common.LogInfo, "starting scenario group %s (%d scenarios)", g.Name, len(g.Scenarios))

	for _, s := range g.Scenarios {
		sc := &ScenarioContext{
			Ctx:       ctx,
			Group:     g.Name,
			Name:      s.Name,
			Workspace: ws,
			Logger:    r.logger(),
		}
		if ws != nil {
			sc.AzCopy = ws.NewAzCopyRunner(r.logger())
			sc.TestSuite = ws.NewTestSuiteRunner(r.logger())
		}

		r.reporter().ScenarioStarted(g.Name, s.Name)
		res := r.runScenario(sc, s)
		r.reporter().ScenarioFinished(res)
		result.Results = append(result.Results, res)
	}

	result.Duration = r.clock().Sub(start)
	r.reporter().GroupFinished(result)

	tally := result.Tally()
	level := common.LogInfo
	if !tally.Successful() {
		level = common.LogWarning
	}
	common.Logf(r.logger(), level, "finished scenario group %s: %d passed, %d failed, %d errors, %d skipped",
		g.Name, tally.Passed, tally.Failed, tally.Errored, tally.Skipped)
	return result
}

func (r *Runner) runScenario(sc *ScenarioContext, s Scenario) (res ScenarioResult) {
	res = ScenarioResult{Group: sc.Group, Name: sc.Name}
	start := r.clock()

	if err := sc.Ctx.Err(); err != nil {
		res.Outcome = EOutcome.Skipped()
		res.SkipReason = "run interrupted"
		return res
	}

	defer func() {
		res.Duration = r.clock().Sub(start)
		if p := recover(); p != nil {
			res.Outcome = EOutcome.Errored()
			res.Err = errors.New(fmt.Sprintf("panic: %v\n%s", p, debug.Stack()))
			common.Logf(r.logger(), common.LogError, "scenario %s panicked: %v", res.ID(), p)
		}
	}()

	err := s.Run(sc)
	switch reason, skipped := SkipReason(err); {
	case err == nil:
		res.Outcome = EOutcome.Passed()
	case skipped:
		res.Outcome = EOutcome.Skipped()
		res.SkipReason = reason
	default:
		res.Outcome = EOutcome.Failed()
		res.Err = err
		common.Logf(r.logger(), common.LogError, "scenario %s failed: %v", res.ID(), err)
	}
	return res
}
