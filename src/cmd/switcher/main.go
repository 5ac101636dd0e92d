// Package main implements vvm-switch, the companion tool that changes
// the active Verilator version by editing the shell startup file
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/constants"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "vvm-switch",
	Short: "Switch the active Verilator version",
	Long: `vvm-switch changes which Verilator installation your shell uses by
editing the VERILATOR_ROOT assignment in your shell startup file.

A bare version argument is shorthand for the switch command:

  vvm-switch v5.024        # same as: vvm-switch switch v5.024`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// VVM_VERBOSE=1 enables debug output, the flag enables it on top
		ui.CheckVerboseEnv()
		if verboseFlag {
			ui.SetVerbose(true)
		}
	},
}

func main() {
	// Rewrite a bare version argument into a switch invocation before
	// Cobra parses
	if len(os.Args) > 1 && looksLikeVersion(os.Args[1]) {
		os.Args = append([]string{os.Args[0], "switch"}, os.Args[1:]...)
	}

	if err := rootCmd.Execute(); err != nil {
		// Cobra already printed the error
		os.Exit(1)
	}
}

// looksLikeVersion reports whether an argument names a release tag
// rather than a subcommand or flag
func looksLikeVersion(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	return version.IsReleaseTag(version.Canonical(arg))
}

// tagForRoot extracts the tag from a managed install path, or returns
// the empty string for paths vvm does not manage
func tagForRoot(root string) string {
	if root == "" {
		return ""
	}
	base := filepath.Base(filepath.Clean(root))
	if !strings.HasPrefix(base, constants.InstallDirPrefix) {
		return ""
	}
	return strings.TrimPrefix(base, constants.InstallDirPrefix)
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Print debug output")
}
