// Package cmd implements the CLI commands for vvm
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/tui"
	"github.com/vvm/vvm/src/internal/ui"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "vvm",
	Short: "Verilator Version Manager",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// VVM_VERBOSE=1 enables debug output, the flag enables it on top
		ui.CheckVerboseEnv()
		if verboseFlag {
			ui.SetVerbose(true)
		}
	},
}

func Execute() {
	// Short-circuit --version/-v before cobra parses flags
	if args := os.Args[1:]; slices.Contains(args, "--version") || slices.Contains(args, "-v") {
		versionCmd.Run(versionCmd, nil)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Print debug output")

	// Both help and usage go through the same table renderer
	rootCmd.SetUsageFunc(renderUsage)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		_ = renderUsage(cmd)
	})
}

func renderUsage(cmd *cobra.Command) error {
	const tableWidth = 95 // Same width for both tables

	header := tui.NewTable("")
	header.SetTitle(cmd.Short)
	header.HideHeader()
	header.SetMinWidth(tableWidth)
	header.AddRow("VVM builds and manages multiple Verilator versions side by side, from source or from")
	header.AddRow("prebuilt archives, and switches the active toolchain through your shell startup file.")

	commands := tui.NewTable("Command", "Description")
	commands.SetTitle("Available Commands")
	commands.SetMinWidth(tableWidth)
	for _, c := range cmd.Commands() {
		if !c.Hidden && c.Name() != "completion" {
			commands.AddRow(c.Name(), c.Short)
		}
	}

	fmt.Println(header.Render())
	fmt.Println()
	fmt.Println(commands.Render())

	return nil
}
