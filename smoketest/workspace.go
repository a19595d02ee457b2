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
	"path/filepath"

	"github.com/vijayraavi/azure-storage-azcopy/common"
	"github.com/vijayraavi/azure-storage-azcopy/config"
)

// TestDataDirName is created under TEST_DIRECTORY_PATH and holds everything a run produces locally.
const TestDataDirName = "test_data"

// Workspace is what a successful initialization hands to the scenarios.
type Workspace struct {
	// Dir is TEST_DIRECTORY_PATH with test_data appended.
	Dir           string
	AzCopyPath    string
	TestSuitePath string
	Config        config.Config
}

func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Dir}, elem...)...)
}

// Environ is appended to the environment of every child process. azcopy writes its logs and plan
// files under the workspace so nothing lands in the harness working directory.
func (w *Workspace) Environ() []string {
	env := w.Config.Environ()
	env = append(env,
		common.EEnvironmentVariable.LogLocation().Name+"="+w.Path("logs"),
		common.EEnvironmentVariable.JobPlanLocation().Name+"="+w.Path("plans"),
	)
	return env
}

func (w *Workspace) NewAzCopyRunner(logger common.ILogger) *AzCopyRunner {
	return &AzCopyRunner{Path: w.AzCopyPath, Dir: w.Dir, Env: w.Environ(), Logger: logger}
}

func (w *Workspace) NewTestSuiteRunner(logger common.ILogger) *TestSuiteRunner {
	return &TestSuiteRunner{Path: w.TestSuitePath, Dir: w.Dir, Env: w.Environ(), Logger: logger}
}
