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

package common

import (
	"reflect"

	"github.com/JeffreyRichter/enum/enum"
)

var EExitCode = ExitCode(0)

// ExitCode is the process exit status of a smoke test run.
//
//	Success (0):      every scenario passed or was skipped
//	TestFailure (1):  at least one scenario failed or errored
//	RuntimeError (2): configuration or initialization failed before any scenario ran
type ExitCode uint32

func (ExitCode) Success() ExitCode      { return ExitCode(0) }
func (ExitCode) TestFailure() ExitCode  { return ExitCode(1) }
func (ExitCode) RuntimeError() ExitCode { return ExitCode(2) }

func (ec ExitCode) String() string {
	return enum.StringInt(ec, reflect.TypeOf(ec))
}
