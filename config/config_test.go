package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completeConfigFile = `
[WINDOWS]
TEST_DIRECTORY_PATH = C:\smoke
AZCOPY_EXECUTABLE_PATH = C:\bin\azcopy.exe
TEST_SUITE_EXECUTABLE_LOCATION = C:\bin\testSuite.exe

[LINUX]
TEST_DIRECTORY_PATH = /tmp/smoke
AZCOPY_EXECUTABLE_PATH = /usr/local/bin/azcopy
TEST_SUITE_EXECUTABLE_LOCATION = /usr/local/bin/testSuite

[CREDENTIALS]
CONTAINER_SAS_URL = https://acct.blob.core.windows.net/smoke?sv=2020-02-10&ss=b&sig=abc%2Bdef%3D
CONTAINER_OAUTH_URL = https://oauth.blob.core.windows.net/smoke
CONTAINER_OAUTH_VALIDATE_SAS_URL = https://oauth.blob.core.windows.net/smoke?sv=2020-02-10&sig=xyz
SHARE_SAS_URL = https://acct.file.core.windows.net/share?sv=2020-02-10&sig=s;h#a
PREMIUM_CONTAINER_SAS_URL = https://premium.blob.core.windows.net/smoke?sig=p
ACCOUNT_NAME = acct
ACCOUNT_KEY = a2V5a2V5a2V5==
FILESYSTEM_URL = https://acct.dfs.core.windows.net/fs
AZCOPY_OAUTH_TOKEN_INFO = {"access_token":"t","expires_in":"3599"}
`

var expectedLinuxConfig = Config{
	TestDirectoryPath:            "/tmp/smoke",
	AzCopyExecutablePath:         "/usr/local/bin/azcopy",
	TestSuiteExecutablePath:      "/usr/local/bin/testSuite",
	ContainerSASURL:              "https://acct.blob.core.windows.net/smoke?sv=2020-02-10&ss=b&sig=abc%2Bdef%3D",
	ContainerOAuthURL:            "https://oauth.blob.core.windows.net/smoke",
	ContainerOAuthValidateSASURL: "https://oauth.blob.core.windows.net/smoke?sv=2020-02-10&sig=xyz",
	ShareSASURL:                  "https://acct.file.core.windows.net/share?sv=2020-02-10&sig=s;h#a",
	PremiumContainerSASURL:       "https://premium.blob.core.windows.net/smoke?sig=p",
	AccountName:                  "acct",
	AccountKey:                   "a2V5a2V5a2V5==",
	FilesystemURL:                "https://acct.dfs.core.windows.net/fs",
	OAuthTokenInfo:               `{"access_token":"t","expires_in":"3599"}`,
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_suite_config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func newTestResolver(path string, env map[string]string) *Resolver {
	return &Resolver{ConfigFile: path, Platform: "LINUX", LookupEnv: envFrom(env)}
}

func TestResolveFromFileSetsExactlyTwelveParameters(t *testing.T) {
	a := assert.New(t)
	path := writeConfigFile(t, completeConfigFile)

	cfg, err := newTestResolver(path, nil).Resolve()
	require.NoError(t, err)
	a.Equal(expectedLinuxConfig, cfg)

	environ := cfg.Environ()
	a.Len(environ, 12)
	for _, p := range Parameters() {
		expected, _ := expectedLinuxConfig.Get(p.EnvName)
		a.Contains(environ, p.EnvName+"="+expected)
	}
}

func TestResolveSelectsPlatformSection(t *testing.T) {
	path := writeConfigFile(t, completeConfigFile)

	r := newTestResolver(path, nil)
	r.Platform = "WINDOWS"
	cfg, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, `C:\smoke`, cfg.TestDirectoryPath)
	assert.Equal(t, `C:\bin\azcopy.exe`, cfg.AzCopyExecutablePath)
	assert.Equal(t, "acct", cfg.AccountName)
}

func TestResolveWithCompleteEnvironmentNeverOpensFile(t *testing.T) {
	a := assert.New(t)
	env := map[string]string{}
	for _, line := range expectedLinuxConfig.Environ() {
		kv := strings.SplitN(line, "=", 2)
		env[kv[0]] = kv[1]
	}

	// the file does not exist, so any attempt to read it would fail the resolution
	missingPath := filepath.Join(t.TempDir(), "does-not-exist.ini")
	cfg, err := newTestResolver(missingPath, env).Resolve()
	require.NoError(t, err)
	a.Equal(expectedLinuxConfig, cfg)

	// idempotent
	again, err := newTestResolver(missingPath, env).Resolve()
	require.NoError(t, err)
	a.Equal(cfg, again)
}

func TestResolveMissingPlatformSection(t *testing.T) {
	a := assert.New(t)
	path := writeConfigFile(t, completeConfigFile)

	r := newTestResolver(path, nil)
	r.Platform = "PLAN9"
	cfg, err := r.Resolve()

	a.Error(err)
	a.True(errors.Is(err, ErrPlatformNotFound))
	a.False(errors.Is(err, ErrConfigFileOpen))
	a.Contains(err.Error(), "PLAN9")
	a.Equal(Config{}, cfg)
}

func TestResolveMissingFile(t *testing.T) {
	a := assert.New(t)

	cfg, err := newTestResolver(filepath.Join(t.TempDir(), "nope.ini"), map[string]string{
		"TEST_DIRECTORY_PATH": "/tmp/smoke",
	}).Resolve()

	a.Error(err)
	a.True(errors.Is(err, ErrConfigFileOpen))
	a.Contains(err.Error(), "nope.ini")
	a.Equal(Config{}, cfg)
}

func TestResolveUnreadableFile(t *testing.T) {
	// a directory is not a readable config file
	cfg, err := newTestResolver(t.TempDir(), nil).Resolve()

	assert.True(t, errors.Is(err, ErrConfigFileOpen))
	assert.Equal(t, Config{}, cfg)
}

func TestResolveEnvironmentWinsKeyByKey(t *testing.T) {
	a := assert.New(t)
	path := writeConfigFile(t, completeConfigFile)

	cfg, err := newTestResolver(path, map[string]string{
		"TEST_DIRECTORY_PATH": "/data/from-env",
		"ACCOUNT_NAME":        "envacct",
		// the absence sentinel counts as not set
		"ACCOUNT_KEY": "-1",
	}).Resolve()
	require.NoError(t, err)

	a.Equal("/data/from-env", cfg.TestDirectoryPath)
	a.Equal("envacct", cfg.AccountName)
	a.Equal(expectedLinuxConfig.AccountKey, cfg.AccountKey)
	a.Equal(expectedLinuxConfig.AzCopyExecutablePath, cfg.AzCopyExecutablePath)
}

func TestResolveReportsEveryMissingKey(t *testing.T) {
	a := assert.New(t)
	path := writeConfigFile(t, `
[LINUX]
TEST_DIRECTORY_PATH = /tmp/smoke
AZCOPY_EXECUTABLE_PATH = /usr/local/bin/azcopy

[CREDENTIALS]
CONTAINER_SAS_URL = https://acct.blob.core.windows.net/smoke?sig=a
`)

	cfg, err := newTestResolver(path, nil).Resolve()
	a.Equal(Config{}, cfg)

	var missingErr *MissingParametersError
	require.True(t, errors.As(err, &missingErr))
	a.Len(missingErr.Names(), 9)
	a.Contains(missingErr.Names(), "TEST_SUITE_EXECUTABLE_LOCATION")
	a.Contains(missingErr.Names(), "AZCOPY_OAUTH_TOKEN_INFO")
	a.NotContains(missingErr.Names(), "CONTAINER_SAS_URL")
	a.Contains(err.Error(), "ACCOUNT_KEY")
}

func TestResolveMissingCredentialsSection(t *testing.T) {
	path := writeConfigFile(t, `
[LINUX]
TEST_DIRECTORY_PATH = /tmp/smoke
AZCOPY_EXECUTABLE_PATH = /usr/local/bin/azcopy
TEST_SUITE_EXECUTABLE_LOCATION = /usr/local/bin/testSuite
`)

	_, err := newTestResolver(path, nil).Resolve()

	var missingErr *MissingParametersError
	require.True(t, errors.As(err, &missingErr))
	assert.Len(t, missingErr.Names(), 9)
	assert.Contains(t, err.Error(), "[CREDENTIALS]")
}

func TestResolveKeysAreCaseInsensitive(t *testing.T) {
	content := strings.Replace(completeConfigFile,
		"AZCOPY_EXECUTABLE_PATH = /usr/local/bin/azcopy", "azcopy_executable_path = /usr/local/bin/azcopy", 1)
	path := writeConfigFile(t, content)

	cfg, err := newTestResolver(path, nil).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/azcopy", cfg.AzCopyExecutablePath)
}

func TestParametersOrderAndSections(t *testing.T) {
	a := assert.New(t)
	params := Parameters()

	a.Len(params, 12)
	a.Equal("TEST_DIRECTORY_PATH", params[0].EnvName)
	a.True(params[0].IsPlatformSpecific())
	a.Equal("AZCOPY_OAUTH_TOKEN_INFO", params[11].EnvName)
	a.Equal(CredentialsSection, params[11].Section)

	platformSpecific := 0
	for _, p := range params {
		if p.IsPlatformSpecific() {
			platformSpecific++
		}
	}
	a.Equal(3, platformSpecific)
}

func TestPlatformKeyIsUppercase(t *testing.T) {
	key := PlatformKey()
	assert.Equal(t, strings.ToUpper(key), key)
	assert.NotEmpty(t, key)
}
