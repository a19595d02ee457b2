package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelParseAndString(t *testing.T) {
	a := assert.New(t)

	var ll LogLevel
	require.NoError(t, ll.Parse("warning"))
	a.Equal(LogWarning, ll)
	a.Equal("Warning", ll.String())

	require.NoError(t, ll.Parse("DEBUG"))
	a.Equal(ELogLevel.Debug(), ll)

	a.Error(ll.Parse("loud"))
}

func TestHarnessLoggerFiltersAndRedacts(t *testing.T) {
	a := assert.New(t)
	buf := &bytes.Buffer{}

	logger := NewHarnessLogger(LogInfo, buf)
	logger.Log(LogDebug, "debug line should be dropped")
	logger.Log(LogInfo, "copying https://acct.blob.core.windows.net/c?sv=1&sig=supersecret")
	logger.Log(LogError, "something broke")
	logger.Log(LogNone, "never")

	out := buf.String()
	a.NotContains(out, "debug line should be dropped")
	a.NotContains(out, "supersecret")
	a.Contains(out, "sig=-REDACTED-")
	a.Contains(out, "ERROR: something broke")
	a.NotContains(out, "never")
	a.True(strings.Contains(out, "SmokeTestVersion"))
}

func TestHarnessLoggerNoneWritesNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewHarnessLogger(LogNone, buf)
	logger.Log(LogFatal, "fatal")
	logger.CloseLog()

	assert.Empty(t, buf.String())
}

func TestByteSizeToString(t *testing.T) {
	a := assert.New(t)

	a.Equal("0.00 B", ByteSizeToString(0))
	a.Equal("1.50 KiB", ByteSizeToString(1536))
	a.Equal("10.00 MiB", ByteSizeToString(10*1024*1024))
}

func TestExitCodeString(t *testing.T) {
	a := assert.New(t)

	a.Equal("Success", EExitCode.Success().String())
	a.Equal("TestFailure", EExitCode.TestFailure().String())
	a.Equal(uint32(2), uint32(EExitCode.RuntimeError()))
}
