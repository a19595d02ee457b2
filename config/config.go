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
	"reflect"
	"runtime"
	"strings"
)

const (
	// DefaultConfigFile is resolved relative to the directory the harness is started from.
	DefaultConfigFile = "../test_suite_config.ini"

	// CredentialsSection is shared by every platform.
	CredentialsSection = "CREDENTIALS"

	// platformSection is a placeholder in the ini tag, replaced by the platform key at resolve time.
	platformSection = "platform"
)

/*
Config is the complete set of inputs to a smoke test run. It is resolved once at startup and
handed by value to every collaborator; nothing reads the process environment afterwards.

The env tag names the environment variable (and the ini key, which is the same name).
The ini tag names the ini section the key is read from when the variable is not set:
"platform" means the section named after the current OS, anything else is a literal section name.
*/
type Config struct {
	// Location where the test_data folder is created. Test files are created and downloaded there.
	TestDirectoryPath string `env:"TEST_DIRECTORY_PATH" ini:"platform"`
	// azcopy executable under test; copied into test_data.
	AzCopyExecutablePath string `env:"AZCOPY_EXECUTABLE_PATH" ini:"platform"`
	// test suite (validator) executable; copied into test_data.
	TestSuiteExecutablePath string `env:"TEST_SUITE_EXECUTABLE_LOCATION" ini:"platform"`

	ContainerSASURL              string `env:"CONTAINER_SAS_URL" ini:"CREDENTIALS"`
	ContainerOAuthURL            string `env:"CONTAINER_OAUTH_URL" ini:"CREDENTIALS"`
	ContainerOAuthValidateSASURL string `env:"CONTAINER_OAUTH_VALIDATE_SAS_URL" ini:"CREDENTIALS"`
	ShareSASURL                  string `env:"SHARE_SAS_URL" ini:"CREDENTIALS"`
	PremiumContainerSASURL       string `env:"PREMIUM_CONTAINER_SAS_URL" ini:"CREDENTIALS"`
	AccountName                  string `env:"ACCOUNT_NAME" ini:"CREDENTIALS"`
	AccountKey                   string `env:"ACCOUNT_KEY" ini:"CREDENTIALS"`
	FilesystemURL                string `env:"FILESYSTEM_URL" ini:"CREDENTIALS"`
	OAuthTokenInfo               string `env:"AZCOPY_OAUTH_TOKEN_INFO" ini:"CREDENTIALS"`
}

// Parameter describes one field of Config.
type Parameter struct {
	FieldName string
	EnvName   string
	Section   string // CredentialsSection, or the literal "platform"
}

// IsPlatformSpecific reports whether the parameter lives in the per-OS section.
func (p Parameter) IsPlatformSpecific() bool {
	return p.Section == platformSection
}

// Parameters lists every Config field in declaration order.
func Parameters() []Parameter {
	t := reflect.TypeOf(Config{})
	out := make([]Parameter, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		out = append(out, Parameter{
			FieldName: f.Name,
			EnvName:   f.Tag.Get("env"),
			Section:   f.Tag.Get("ini"),
		})
	}
	return out
}

// Get returns the value of the parameter named by its environment variable name.
func (c Config) Get(envName string) (string, bool) {
	v := reflect.ValueOf(c)
	for _, p := range Parameters() {
		if p.EnvName == envName {
			return v.FieldByName(p.FieldName).String(), true
		}
	}
	return "", false
}

// set is only used while resolving, on the resolver's private copy.
func (c *Config) set(p Parameter, value string) {
	reflect.ValueOf(c).Elem().FieldByName(p.FieldName).SetString(value)
}

// Environ renders the configuration as NAME=value pairs, ready to be appended to a child process environment.
// azcopy reads ACCOUNT_NAME, ACCOUNT_KEY and AZCOPY_OAUTH_TOKEN_INFO from its environment, the
// test suite executable reads ACCOUNT_NAME and ACCOUNT_KEY.
func (c Config) Environ() []string {
	v := reflect.ValueOf(c)
	params := Parameters()
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, p.EnvName+"="+v.FieldByName(p.FieldName).String())
	}
	return out
}

// PlatformKey is the ini section name for the running OS, e.g. LINUX, WINDOWS or DARWIN.
func PlatformKey() string {
	return strings.ToUpper(runtime.GOOS)
}
