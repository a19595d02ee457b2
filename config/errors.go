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

package config

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrConfigFileOpen means the ini file could not be opened or parsed.
	ErrConfigFileOpen = errors.New("failed to find/open the test suite config file")
	// ErrPlatformNotFound means the ini file has no section for the running OS.
	ErrPlatformNotFound = errors.New("not able to find the config defined for ostype")
)

// MissingParametersError lists every parameter that neither the environment nor the config file provided.
type MissingParametersError struct {
	// env name -> where we looked
	Missing map[string]string
}

func newMissingParametersError() *MissingParametersError {
	return &MissingParametersError{Missing: map[string]string{}}
}

func (m *MissingParametersError) add(envName, reason string) {
	m.Missing[envName] = reason
}

func (m *MissingParametersError) Empty() bool {
	return m == nil || len(m.Missing) == 0
}

// Names returns the missing env names in sorted order.
func (m *MissingParametersError) Names() []string {
	out := make([]string, 0, len(m.Missing))
	for k := range m.Missing {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *MissingParametersError) Error() string {
	lines := make([]string, 0, len(m.Missing))
	for _, name := range m.Names() {
		lines = append(lines, name+": "+m.Missing[name])
	}
	return "missing test suite parameters:\n  " + strings.Join(lines, "\n  ")
}

// finalize returns a real nil when nothing is missing, so callers can compare against nil.
func (m *MissingParametersError) finalize() error {
	if m.Empty() {
		return nil
	}
	return m
}

// ConfigFileError is returned when the ini file cannot be opened or parsed.
type ConfigFileError struct {
	Path string
	Err  error
}

func (e *ConfigFileError) Error() string {
	return "failed to find/open " + e.Path + ": " + e.Err.Error()
}

func (e *ConfigFileError) Unwrap() error { return e.Err }

func (e *ConfigFileError) Is(target error) bool { return target == ErrConfigFileOpen }

// PlatformNotFoundError is returned when the ini file has no section for the running OS.
type PlatformNotFoundError struct {
	Platform string
	Sections []string
}

func (e *PlatformNotFoundError) Error() string {
	return "not able to find the config defined for ostype " + e.Platform +
		" (sections present: " + strings.Join(e.Sections, ", ") + ")"
}

func (e *PlatformNotFoundError) Is(target error) bool { return target == ErrPlatformNotFound }
