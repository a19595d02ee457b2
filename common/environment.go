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
	"strings"
)

type EnvironmentVariable struct {
	Name         string
	DefaultValue string
	Description  string
	Hidden       bool // values are secrets and are not printed by the env command
}

// AbsentEnvironmentValue is treated the same as an unset variable.
const AbsentEnvironmentValue = "-1"

// This array needs to be updated when a new harness environment variable is added
var VisibleEnvironmentVariables = []EnvironmentVariable{
	EEnvironmentVariable.TestDirectoryPath(),
	EEnvironmentVariable.AzCopyExecutablePath(),
	EEnvironmentVariable.TestSuiteExecutableLocation(),
	EEnvironmentVariable.ContainerSASURL(),
	EEnvironmentVariable.ContainerOAuthURL(),
	EEnvironmentVariable.ContainerOAuthValidateSASURL(),
	EEnvironmentVariable.ShareSASURL(),
	EEnvironmentVariable.PremiumContainerSASURL(),
	EEnvironmentVariable.AccountName(),
	EEnvironmentVariable.AccountKey(),
	EEnvironmentVariable.FilesystemURL(),
	EEnvironmentVariable.OAuthTokenInfo(),
}

var EEnvironmentVariable = EnvironmentVariable{}

func (EnvironmentVariable) TestDirectoryPath() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "TEST_DIRECTORY_PATH",
		Description: "Location where the test_data folder is created. Test files are created and downloaded there.",
	}
}

func (EnvironmentVariable) AzCopyExecutablePath() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "AZCOPY_EXECUTABLE_PATH",
		Description: "Location of the azcopy executable under test. It is copied into test_data before the run.",
	}
}

func (EnvironmentVariable) TestSuiteExecutableLocation() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "TEST_SUITE_EXECUTABLE_LOCATION",
		Description: "Location of the test suite executable used to create and validate resources. It is copied into test_data before the run.",
	}
}

func (EnvironmentVariable) ContainerSASURL() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "CONTAINER_SAS_URL",
		Description: "Container URL with SAS where test data is uploaded to and downloaded from.",
		Hidden:      true,
	}
}

func (EnvironmentVariable) ContainerOAuthURL() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "CONTAINER_OAUTH_URL",
		Description: "Container whose storage account has been configured for the OAuth test identity.",
	}
}

func (EnvironmentVariable) ContainerOAuthValidateSASURL() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "CONTAINER_OAUTH_VALIDATE_SAS_URL",
		Description: "The same container as CONTAINER_OAUTH_URL, with a SAS, used for validation.",
		Hidden:      true,
	}
}

func (EnvironmentVariable) ShareSASURL() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "SHARE_SAS_URL",
		Description: "File share URL with SAS where test data is uploaded to and downloaded from.",
		Hidden:      true,
	}
}

func (EnvironmentVariable) PremiumContainerSASURL() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "PREMIUM_CONTAINER_SAS_URL",
		Description: "Container URL with SAS on a premium storage account.",
		Hidden:      true,
	}
}

func (EnvironmentVariable) AccountName() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "ACCOUNT_NAME",
		Description: "Account name used for shared key operations against the Blob FS service.",
	}
}

func (EnvironmentVariable) AccountKey() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "ACCOUNT_KEY",
		Description: "Account key used for shared key operations against the Blob FS service.",
		Hidden:      true,
	}
}

func (EnvironmentVariable) FilesystemURL() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "FILESYSTEM_URL",
		Description: "Blob FS filesystem URL (dfs endpoint) accessed with shared key.",
	}
}

func (EnvironmentVariable) OAuthTokenInfo() EnvironmentVariable {
	return EnvironmentVariable{
		Name:        "AZCOPY_OAUTH_TOKEN_INFO",
		Description: "Serialized OAuth token handed to azcopy for the OAuth scenarios.",
		Hidden:      true,
	}
}

// variables the harness sets for azcopy itself, not read from the configuration
func (EnvironmentVariable) LogLocation() EnvironmentVariable {
	return EnvironmentVariable{Name: "AZCOPY_LOG_LOCATION"}
}

func (EnvironmentVariable) JobPlanLocation() EnvironmentVariable {
	return EnvironmentVariable{Name: "AZCOPY_JOB_PLAN_LOCATION"}
}

// EnvironmentVariablesHelp renders VisibleEnvironmentVariables for command help output.
func EnvironmentVariablesHelp() string {
	sb := strings.Builder{}
	for _, ev := range VisibleEnvironmentVariables {
		sb.WriteString(fmt.Sprintf("  %s\n      %s\n", ev.Name, ev.Description))
	}
	return sb.String()
}
