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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vijayraavi/azure-storage-azcopy/common"
	"github.com/vijayraavi/azure-storage-azcopy/config"
	"github.com/vijayraavi/azure-storage-azcopy/scenarios"
	"github.com/vijayraavi/azure-storage-azcopy/smoketest"
)

var (
	configFile  string
	runPattern  string
	logLevelRaw string
	noColor     bool

	exitCode = common.EExitCode.Success()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version:       common.SmokeTestVersion,
	Use:           "azcopy-smoketest",
	Short:         rootCmdShortDescription,
	Long:          rootCmdLongDescription,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var level common.LogLevel
		if err := level.Parse(logLevelRaw); err != nil {
			return errors.Wrapf(err, "invalid --log-level %q", logLevelRaw)
		}

		var filter *regexp.Regexp
		if runPattern != "" {
			re, err := regexp.Compile(runPattern)
			if err != nil {
				return errors.Wrapf(err, "invalid --run pattern %q", runPattern)
			}
			filter = re
		}

		logger := common.NewHarnessLogger(level, cmd.OutOrStdout())
		defer logger.CloseLog()
		common.LogHostInfo(logger)
		cmd.Flags().Visit(func(f *pflag.Flag) {
			common.Logf(logger, common.LogDebug, "flag --%s=%s", f.Name, f.Value.String())
		})

		registry := smoketest.NewRegistry()
		scenarios.Register(registry)

		orchestrator := &smoketest.Orchestrator{
			Resolver:    config.NewResolver(configFile, logger),
			Initializer: smoketest.NewSuiteInitializer(logger),
			Registry:    registry,
			Runner:      smoketest.NewRunner(smoketest.NewConsoleReporter(cmd.OutOrStdout(), noColor), logger),
			Filter:      filter,
			Out:         cmd.OutOrStdout(),
			Logger:      logger,
		}

		result := orchestrator.Run(cmd.Context())
		exitCode = result.ExitCode()
		return nil
	},
}

// Execute runs the root command and returns the process exit status. An interrupt cancels the
// context handed to the run, which stops the child process currently executing.
func Execute() common.ExitCode {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: "+err.Error())
		return common.EExitCode.RuntimeError()
	}
	return exitCode
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config-file", config.DefaultConfigFile,
		"Ini file read for every parameter that is not set in the environment. Relative paths are resolved from the working directory.")
	rootCmd.Flags().StringVar(&runPattern, "run", "",
		"Only run scenarios whose Group/Scenario identifier matches this regular expression, e.g. '^BlobDownload/'.")
	rootCmd.Flags().StringVar(&logLevelRaw, "log-level", common.LogInfo.String(),
		"Minimum level of harness log messages: "+strings.Join([]string{"NONE", "ERROR", "WARNING", "INFO", "DEBUG"}, ", ")+".")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured scenario results.")
}
