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
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// Reporter receives progress from the Runner.
type Reporter interface {
	ScenarioStarted(group, scenario string)
	ScenarioFinished(result ScenarioResult)
	GroupFinished(result GroupResult)
	RunFinished(result RunResult)
}

type nullReporter struct{}

func (nullReporter) ScenarioStarted(string, string)  {}
func (nullReporter) ScenarioFinished(ScenarioResult) {}
func (nullReporter) GroupFinished(GroupResult)       {}
func (nullReporter) RunFinished(RunResult)           {}

const (
	separator1 = "======================================================================"
	separator2 = "----------------------------------------------------------------------"
)

// ConsoleReporter prints one line per scenario, failure details and a tally after each group,
// and a summary table at the end of the run.
type ConsoleReporter struct {
	w         io.Writer
	sanitizer common.LogSanitizer

	passedColor  *color.Color
	failedColor  *color.Color
	erroredColor *color.Color
	skippedColor *color.Color
}

func NewConsoleReporter(w io.Writer, noColor bool) *ConsoleReporter {
	r := &ConsoleReporter{
		w:            w,
		sanitizer:    common.NewAzCopyLogSanitizer(),
		passedColor:  color.New(color.FgGreen),
		failedColor:  color.New(color.FgRed),
		erroredColor: color.New(color.FgYellow),
		skippedColor: color.New(color.Faint, color.FgBlue),
	}
	if noColor {
		for _, c := range []*color.Color{r.passedColor, r.failedColor, r.erroredColor, r.skippedColor} {
			c.DisableColor()
		}
	}
	return r
}

// ScenarioStarted prints nothing; the harness log shares the stream, so the whole
// "name (Group) ... outcome" line is written once the scenario finishes.
func (r *ConsoleReporter) ScenarioStarted(group, scenario string) {}

func (r *ConsoleReporter) ScenarioFinished(result ScenarioResult) {
	_, _ = fmt.Fprintf(r.w, "%s (%s) ... ", result.Name, result.Group)
	switch result.Outcome {
	case EOutcome.Passed():
		_, _ = r.passedColor.Fprintln(r.w, "ok")
	case EOutcome.Failed():
		_, _ = r.failedColor.Fprintln(r.w, "FAIL")
	case EOutcome.Errored():
		_, _ = r.erroredColor.Fprintln(r.w, "ERROR")
	case EOutcome.Skipped():
		_, _ = r.skippedColor.Fprintf(r.w, "skipped '%s'\n", result.SkipReason)
	}
}

func (r *ConsoleReporter) GroupFinished(result GroupResult) {
	_, _ = fmt.Fprintln(r.w)

	for _, s := range result.Results {
		var label string
		switch s.Outcome {
		case EOutcome.Errored():
			label = "ERROR"
		case EOutcome.Failed():
			label = "FAIL"
		default:
			continue
		}
		_, _ = fmt.Fprintln(r.w, separator1)
		_, _ = fmt.Fprintf(r.w, "%s: %s (%s)\n", label, s.Name, s.Group)
		_, _ = fmt.Fprintln(r.w, separator2)
		if s.Err != nil {
			// scenario errors quote command lines, which carry SAS tokens
			_, _ = fmt.Fprintf(r.w, "%s\n\n", r.sanitizer.SanitizeLogMessage(strings.TrimRight(s.Err.Error(), "\n")))
		}
	}

	tally := result.Tally()
	_, _ = fmt.Fprintln(r.w, separator2)
	_, _ = fmt.Fprintf(r.w, "Ran %d test%s in %.3fs\n\n", tally.Ran(), plural(tally.Ran()), result.Duration.Seconds())

	var details []string
	if tally.Failed > 0 {
		details = append(details, fmt.Sprintf("failures=%d", tally.Failed))
	}
	if tally.Errored > 0 {
		details = append(details, fmt.Sprintf("errors=%d", tally.Errored))
	}
	if tally.Skipped > 0 {
		details = append(details, fmt.Sprintf("skipped=%d", tally.Skipped))
	}
	suffix := ""
	if len(details) > 0 {
		suffix = " (" + strings.Join(details, ", ") + ")"
	}

	if tally.Successful() {
		_, _ = r.passedColor.Fprintln(r.w, "OK"+suffix)
	} else {
		_, _ = r.failedColor.Fprintln(r.w, "FAILED"+suffix)
	}
}

func (r *ConsoleReporter) RunFinished(result RunResult) {
	if len(result.Groups) == 0 {
		return
	}
	_, _ = fmt.Fprintln(r.w)
	RenderSummaryTable(r.w, result)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// RenderSummaryTable prints one row per group plus a total.
func RenderSummaryTable(w io.Writer, result RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Smoke Test Results (%s)", formatDuration(result.Duration)))
	t.AppendHeader(table.Row{"Group", "Duration", "Tests", "Passed", "Failed", "Errors", "Skipped", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Errors", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})

	for _, g := range result.Groups {
		tally := g.Tally()
		t.AppendRow(table.Row{
			g.Name,
			formatDuration(g.Duration),
			tally.Ran(),
			tally.Passed,
			tally.Failed,
			tally.Errored,
			tally.Skipped,
			statusString(tally),
		})
	}

	total := result.Tally()
	t.AppendFooter(table.Row{
		"TOTAL",
		formatDuration(result.Duration),
		total.Ran(),
		total.Passed,
		total.Failed,
		total.Errored,
		total.Skipped,
		statusString(total),
	})

	t.SetStyle(table.StyleLight)
	t.Render()
}

func statusString(t Tally) string {
	if t.Successful() {
		return "PASS"
	}
	return "FAIL"
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
