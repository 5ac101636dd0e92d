package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/tester"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var testCmd = &cobra.Command{
	Use:   "test <tag>",
	Short: "Smoke-test an installed Verilator version",
	Long: `Run a quick functional check against an installed version: ask the
binary for its version, then lint a small known-good design with it.

On failure the scratch directory is kept so the failing invocation can
be rerun by hand.

Example:
  vvm test v5.024`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tag := version.Canonical(args[0])

		spinner := ui.NewSpinner(fmt.Sprintf("Testing verilator %s...", tag))
		spinner.Start()

		t := tester.New(config.DefaultPaths().Versions)
		report, err := t.Run(tag)
		if err != nil {
			spinner.Error("Smoke test failed")

			var notInstalled *registry.NotInstalledError
			if errors.As(err, &notInstalled) {
				ui.Error("%v", err)
				ui.Info("See installed versions with: vvm installed")
				os.Exit(1)
			}

			var runErr *tester.RunError
			if errors.As(err, &runErr) {
				ui.Error("%v", err)
				if runErr.Output != "" {
					ui.Println("%s", runErr.Output)
				}
				if runErr.ScratchDir != "" {
					ui.Info("Scratch directory kept for inspection: %s", runErr.ScratchDir)
				}
				os.Exit(1)
			}

			ui.Error("%v", err)
			os.Exit(1)
		}

		spinner.Success(fmt.Sprintf("verilator %s works", tag))
		ui.Info("Reported version: %s", strings.TrimSpace(report.VersionOut))
		ui.Debug("Binary: %s", report.Binary)
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
