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
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

// LogHostInfo logs the host platform and memory at Info level.
func LogHostInfo(logger ILogger) {
	msg := fmt.Sprintf("Host: %s/%s, %d logical CPUs", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	if vm, err := mem.VirtualMemory(); err == nil {
		msg += fmt.Sprintf(", %s memory total, %s available", ByteSizeToString(int64(vm.Total)), ByteSizeToString(int64(vm.Available)))
	} else {
		Logf(logger, LogDebug, "could not query memory statistics: %v", err)
	}

	logger.Log(LogInfo, msg)
}
