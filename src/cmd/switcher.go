package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/ui"
)

var switcherCmd = &cobra.Command{
	Use:   "switcher [args...]",
	Short: "Run the vvm-switch companion tool",
	Long: `Locate the vvm-switch executable installed next to vvm and run it
with the given arguments.

vvm-switch edits your shell startup file to change the active Verilator
version; see 'vvm switcher help' for its commands.

Examples:
  vvm switcher v5.024
  vvm switcher current`,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		switchPath, err := findSwitchExecutable()
		if err != nil {
			ui.Error("%v", err)
			ui.Info("vvm-switch is installed alongside the vvm executable")
			os.Exit(1)
		}

		c := exec.Command(switchPath, args...)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		if err := c.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				os.Exit(exitErr.ExitCode())
			}
			ui.Error("Failed to run vvm-switch: %v", err)
			os.Exit(1)
		}
	},
}

// findSwitchExecutable locates the vvm-switch binary next to the vvm
// executable, falling back to a PATH lookup
func findSwitchExecutable() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("could not determine vvm location: %w", err)
	}

	switchPath := filepath.Join(filepath.Dir(execPath), "vvm-switch")
	if _, err := os.Stat(switchPath); err == nil {
		return switchPath, nil
	}

	if p, err := exec.LookPath("vvm-switch"); err == nil {
		return p, nil
	}

	return "", fmt.Errorf("vvm-switch executable not found at %s", switchPath)
}

func init() {
	rootCmd.AddCommand(switcherCmd)
}
