package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEnvCommandRedactsSecrets(t *testing.T) {
	t.Setenv("ACCOUNT_KEY", "c2VjcmV0")
	t.Setenv("ACCOUNT_NAME", "smokeacct")

	out, err := runRoot(t, "env")
	assert.NoError(t, err)
	assert.Contains(t, out, "Name: ACCOUNT_KEY\nCurrent Value: REDACTED")
	assert.Contains(t, out, "Current Value: smokeacct")
	assert.NotContains(t, out, "c2VjcmV0")
}

func TestInvalidRunPattern(t *testing.T) {
	_, err := runRoot(t, "--run", "(", "--log-level", "None")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --run pattern")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runRoot(t, "--run", "", "--log-level", "chatty")
	assert.Error(t, err)
}

func TestMissingConfigurationIsRuntimeError(t *testing.T) {
	t.Setenv("TEST_DIRECTORY_PATH", common.AbsentEnvironmentValue)
	missing := filepath.Join(t.TempDir(), "missing.ini")

	out, err := runRoot(t, "--config-file", missing, "--run", "", "--log-level", "None", "--no-color")
	assert.NoError(t, err)
	assert.Equal(t, common.EExitCode.RuntimeError(), exitCode)
	assert.Contains(t, out, "Smoke tests starting...")
	assert.Contains(t, out, "failed to find/open")
}
