package smoketest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayraavi/azure-storage-azcopy/config"
)

func TestInitializeTestSuite(t *testing.T) {
	a := assert.New(t)
	binDir := t.TempDir()
	testDir := t.TempDir()

	// a stale workspace must be wiped
	stale := filepath.Join(testDir, TestDataDirName, "stale.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	azcopy := writeScript(t, binDir, "azcopy", "exit 0")
	cleanLog := filepath.Join(binDir, "clean.log")
	testSuite := writeScript(t, binDir, "testSuite", `echo "$@" >> `+cleanLog)
	mtime := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, os.Chtimes(azcopy, mtime, mtime))

	cfg := config.Config{
		TestDirectoryPath:            testDir,
		AzCopyExecutablePath:         azcopy,
		TestSuiteExecutablePath:      testSuite,
		ContainerSASURL:              "https://acct.blob.core.windows.net/c?sig=a",
		ContainerOAuthValidateSASURL: "https://oauth.blob.core.windows.net/c?sig=b",
		PremiumContainerSASURL:       "https://premium.blob.core.windows.net/c?sig=c",
		ShareSASURL:                  "https://acct.file.core.windows.net/s?sig=d",
		FilesystemURL:                "https://acct.dfs.core.windows.net/fs",
	}

	ws, err := NewSuiteInitializer(nil).InitializeTestSuite(context.Background(), cfg)
	require.NoError(t, err)

	a.Equal(filepath.Join(testDir, TestDataDirName), ws.Dir)
	a.Equal(filepath.Join(ws.Dir, "azcopy"), ws.AzCopyPath)
	a.Equal(filepath.Join(ws.Dir, "testSuite"), ws.TestSuitePath)
	a.Equal(cfg, ws.Config)
	a.NoFileExists(stale)

	info, err := os.Stat(ws.AzCopyPath)
	require.NoError(t, err)
	a.Equal(os.FileMode(0755), info.Mode().Perm())
	a.True(info.ModTime().Equal(mtime))

	calls, err := os.ReadFile(cleanLog)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(calls)), "\n")
	a.Len(lines, 5)
	a.Equal("clean https://acct.blob.core.windows.net/c?sig=a --serviceType=Blob", lines[0])
	a.Equal("clean https://acct.dfs.core.windows.net/fs --serviceType=BlobFS", lines[4])
}

func TestInitializeTestSuiteToleratesFailedPurge(t *testing.T) {
	binDir := t.TempDir()
	cfg := config.Config{
		TestDirectoryPath:       t.TempDir(),
		AzCopyExecutablePath:    writeScript(t, binDir, "azcopy", "exit 0"),
		TestSuiteExecutablePath: writeScript(t, binDir, "testSuite", "echo 'container not found'; exit 1"),
	}

	ws, err := NewSuiteInitializer(nil).InitializeTestSuite(context.Background(), cfg)
	require.NoError(t, err)
	assert.DirExists(t, ws.Dir)
}

func TestInitializeTestSuiteRejectsBadExecutable(t *testing.T) {
	a := assert.New(t)
	binDir := t.TempDir()

	cfg := config.Config{
		TestDirectoryPath:       t.TempDir(),
		AzCopyExecutablePath:    binDir, // a directory, not an executable
		TestSuiteExecutablePath: filepath.Join(binDir, "testSuite"),
	}
	ws, err := NewSuiteInitializer(nil).InitializeTestSuite(context.Background(), cfg)
	a.Nil(ws)
	require.Error(t, err)
	a.Contains(err.Error(), "please verify the azcopy executable location")

	cfg.AzCopyExecutablePath = filepath.Join(binDir, "missing-azcopy")
	_, err = NewSuiteInitializer(nil).InitializeTestSuite(context.Background(), cfg)
	require.Error(t, err)
	a.Contains(err.Error(), "please verify the azcopy executable location")
}

func TestWorkspaceEnviron(t *testing.T) {
	ws := &Workspace{Dir: "/tmp/smoke/test_data", Config: config.Config{AccountName: "acct"}}
	env := ws.Environ()

	assert.Len(t, env, 14)
	assert.Contains(t, env, "ACCOUNT_NAME=acct")
	assert.Contains(t, env, "AZCOPY_LOG_LOCATION="+filepath.Join("/tmp/smoke/test_data", "logs"))
}
