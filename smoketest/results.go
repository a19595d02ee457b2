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
	"reflect"
	"time"

	"github.com/JeffreyRichter/enum/enum"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

var EOutcome = Outcome(0)

type Outcome uint8

func (Outcome) Passed() Outcome  { return Outcome(0) }
func (Outcome) Failed() Outcome  { return Outcome(1) }
func (Outcome) Errored() Outcome { return Outcome(2) }
func (Outcome) Skipped() Outcome { return Outcome(3) }

func (o Outcome) String() string {
	return enum.StringInt(o, reflect.TypeOf(o))
}

type ScenarioResult struct {
	Group      string
	Name       string
	Outcome    Outcome
	Err        error
	SkipReason string
	Duration   time.Duration
}

func (r ScenarioResult) ID() string {
	return ScenarioID(r.Group, r.Name)
}

type GroupResult struct {
	Name     string
	Results  []ScenarioResult
	Duration time.Duration
}

// Tally counts outcomes.
type Tally struct {
	Passed, Failed, Errored, Skipped int
}

func (t Tally) Ran() int {
	return t.Passed + t.Failed + t.Errored + t.Skipped
}

func (t Tally) Successful() bool {
	return t.Failed == 0 && t.Errored == 0
}

func (t *Tally) add(o Outcome) {
	switch o {
	case EOutcome.Passed():
		t.Passed++
	case EOutcome.Failed():
		t.Failed++
	case EOutcome.Errored():
		t.Errored++
	case EOutcome.Skipped():
		t.Skipped++
	}
}

func (g GroupResult) Tally() Tally {
	t := Tally{}
	for _, r := range g.Results {
		t.add(r.Outcome)
	}
	return t
}

// RunResult is the outcome of a whole smoke test run.
type RunResult struct {
	Groups   []GroupResult
	Duration time.Duration
	// SetupErr is set when configuration or initialization failed and no group ran.
	SetupErr error
}

func (r RunResult) Tally() Tally {
	t := Tally{}
	for _, g := range r.Groups {
		for _, s := range g.Results {
			t.add(s.Outcome)
		}
	}
	return t
}

// ExitCode maps the run onto the process exit status.
func (r RunResult) ExitCode() common.ExitCode {
	if r.SetupErr != nil {
		return common.EExitCode.RuntimeError()
	}
	if !r.Tally().Successful() {
		return common.EExitCode.TestFailure()
	}
	return common.EExitCode.Success()
}
