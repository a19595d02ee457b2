// Copyright © 2017 Microsoft <wastore@microsoft.com>
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
	"fmt"
	"io"
	"log"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/JeffreyRichter/enum/enum"
)

var ELogLevel = LogLevel(0)

// LogLevel follows the usual severity ordering; a lower value is more severe.
type LogLevel uint8

func (LogLevel) None() LogLevel    { return LogLevel(0) }
func (LogLevel) Fatal() LogLevel   { return LogLevel(1) }
func (LogLevel) Panic() LogLevel   { return LogLevel(2) }
func (LogLevel) Error() LogLevel   { return LogLevel(3) }
func (LogLevel) Warning() LogLevel { return LogLevel(4) }
func (LogLevel) Info() LogLevel    { return LogLevel(5) }
func (LogLevel) Debug() LogLevel   { return LogLevel(6) }

func (ll *LogLevel) Parse(s string) error {
	val, err := enum.ParseInt(reflect.TypeOf(ll), s, true, true)
	if err == nil {
		*ll = val.(LogLevel)
	}
	return err
}

func (ll LogLevel) String() string {
	return enum.StringInt(ll, reflect.TypeOf(ll))
}

const (
	LogNone    = LogLevel(0)
	LogFatal   = LogLevel(1)
	LogPanic   = LogLevel(2)
	LogError   = LogLevel(3)
	LogWarning = LogLevel(4)
	LogInfo    = LogLevel(5)
	LogDebug   = LogLevel(6)
)

type ILogger interface {
	ShouldLog(level LogLevel) bool
	Log(level LogLevel, msg string)
	Panic(err error)
}

type ILoggerCloser interface {
	ILogger
	CloseLog()
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// harnessLogger writes to a console stream rather than a file, because the harness purges
// *.log files from the working directory at the start and the end of every run.
type harnessLogger struct {
	minimumLevelToLog LogLevel
	logger            *log.Logger
	sanitizer         LogSanitizer
	l                 sync.Mutex
}

func NewHarnessLogger(minimumLevelToLog LogLevel, w io.Writer) ILoggerCloser {
	hl := &harnessLogger{
		minimumLevelToLog: minimumLevelToLog,
		logger:            log.New(w, "", log.LstdFlags|log.LUTC),
		sanitizer:         NewAzCopyLogSanitizer(),
	}

	if minimumLevelToLog != LogNone {
		hl.logger.Println("SmokeTestVersion ", SmokeTestVersion)
		hl.logger.Println("OS-Environment ", runtime.GOOS)
		hl.logger.Println("OS-Architecture ", runtime.GOARCH)
		hl.logger.Println(fmt.Sprintf("Log times are in UTC. Local time is %s", time.Now().Format("2 Jan 2006 15:04:05")))
	}

	return hl
}

func (hl *harnessLogger) ShouldLog(level LogLevel) bool {
	if level == LogNone {
		return false
	}
	return level <= hl.minimumLevelToLog
}

func (hl *harnessLogger) Log(level LogLevel, msg string) {
	if !hl.ShouldLog(level) {
		return
	}

	// ensure all secrets are redacted
	msg = hl.sanitizer.SanitizeLogMessage(msg)

	prefix := ""
	if level <= LogWarning {
		prefix = fmt.Sprintf("%s: ", strings.ToUpper(level.String()))
	}

	hl.l.Lock()
	defer hl.l.Unlock()
	hl.logger.Println(prefix + msg)
}

func (hl *harnessLogger) Panic(err error) {
	hl.Log(LogPanic, err.Error())
	panic(err)
}

func (hl *harnessLogger) CloseLog() {
	hl.Log(LogDebug, "Closing Log")
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

type nullLogger struct{}

// NullLogger discards everything; used by tests and by components constructed without a logger.
func NullLogger() ILogger { return nullLogger{} }

func (nullLogger) ShouldLog(LogLevel) bool { return false }
func (nullLogger) Log(LogLevel, string)    {}
func (nullLogger) Panic(err error)         { panic(err) }

// Logf is a small convenience used across the harness so call sites read like fmt.Printf.
func Logf(logger ILogger, level LogLevel, format string, a ...any) {
	if logger == nil || !logger.ShouldLog(level) {
		return
	}
	logger.Log(level, fmt.Sprintf(format, a...))
}
