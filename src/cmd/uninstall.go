package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <tag>",
	Short: "Uninstall a Verilator version",
	Long: `Remove an installed Verilator version from the versions directory.

The install directory and all its contents are deleted. The currently
active version is protected, and deletion asks for confirmation first.

Examples:
  vvm uninstall v5.024
  vvm uninstall 5.036`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tag := version.Canonical(args[0])

		ui.Header("Uninstalling verilator %s...", tag)

		iv, err := registry.Find(config.DefaultPaths().Versions, tag)
		if err != nil {
			ui.Error("%v", err)
			ui.Info("Run 'vvm installed' to see installed versions")
			os.Exit(1)
		}

		// Refuse to delete the active version out from under the shell
		if tag == activeTag() {
			ui.Error("Cannot uninstall the currently active version")
			ui.Info("Active version: %s", tag)
			ui.Info("Switch to a different version first: vvm-switch <tag>")
			os.Exit(1)
		}

		fmt.Println()
		ui.Warning("About to permanently delete:")
		ui.Info("  %s", iv.Dir)
		fmt.Println()
		if !ui.Confirm(fmt.Sprintf("Are you sure you want to uninstall verilator %s?", tag), false) {
			ui.Info("Nothing was removed")
			return
		}

		spinner := ui.NewSpinner(fmt.Sprintf("Removing verilator %s...", tag))
		spinner.Start()

		if err := os.RemoveAll(iv.Dir); err != nil {
			spinner.Error("Removal failed")
			ui.Error("%v", err)
			os.Exit(1)
		}
		spinner.Success(fmt.Sprintf("verilator %s removed", tag))

		ui.Success("Successfully uninstalled verilator %s", tag)
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
