package cmd

import (
	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// ===================================== ROOT COMMAND ===================================== //
const rootCmdShortDescription = "Runs the AzCopy smoke tests against a live storage account"

var rootCmdLongDescription = `Runs the AzCopy smoke tests against a live storage account.

The run deletes *.log files in the working directory, resolves its configuration, recreates the
test_data directory, copies the azcopy and test suite executables into it, runs every scenario group
in a fixed order and finally deletes *.log files again.

Every parameter is read from its environment variable first. Variables that are unset, or set to -1,
are read from the ini file given by --config-file: paths from the section named after the operating
system (LINUX, WINDOWS or DARWIN), credentials from the CREDENTIALS section.

Exit codes: 0 when every scenario passed or was skipped, 1 when a scenario failed, 2 when the
configuration or the test suite initialization failed.

Parameters:
` + common.EnvironmentVariablesHelp()

// ===================================== ENV COMMAND ===================================== //
const envCmdShortDescription = "Shows the environment variables read by the smoke tests"

const envCmdLongDescription = `Shows the environment variables read by the smoke tests. Secret values are
redacted unless --show-sensitive is given.`
