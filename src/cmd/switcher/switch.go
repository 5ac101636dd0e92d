package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/shellenv"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var switchCmd = &cobra.Command{
	Use:   "switch <tag>",
	Short: "Make an installed version the active one",
	Long: `Point VERILATOR_ROOT at an installed version by editing the shell
startup file.

A backup of the file is taken before its first edit and kept across
switches, so the pre-vvm state can always be restored.

Examples:
  vvm-switch switch v5.024
  vvm-switch v5.024          # shorthand`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tag := version.Canonical(args[0])

		settings, err := config.LoadSettings()
		if err != nil {
			ui.Error("Failed to load settings: %v", err)
			os.Exit(1)
		}

		iv, err := registry.Find(config.DefaultPaths().Versions, tag)
		if err != nil {
			ui.Error("%v", err)
			showInstalledHint()
			os.Exit(1)
		}

		ui.Info("This will edit %s", settings.RCFile)
		if !ui.Confirm(fmt.Sprintf("Switch the active version to %s?", tag), false) {
			ui.Info("Switch canceled")
			return
		}

		created, err := shellenv.EnsureBackup(settings.RCFile)
		if err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}
		if created {
			ui.Info("Backup written to %s", shellenv.BackupPath(settings.RCFile))
		}

		if err := shellenv.Apply(settings.RCFile, iv.Dir); err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}

		ui.Success("Active version set to %s", tag)
		ui.Info("Open a new shell or run: source %s", settings.RCFile)
	},
}

// showInstalledHint prints the versions the user can switch to
func showInstalledHint() {
	installed, err := registry.List(config.DefaultPaths().Versions)
	if err != nil || len(installed) == 0 {
		ui.Info("No Verilator versions installed yet, build one with: vvm build <tag>")
		return
	}

	registry.SortDesc(installed)
	ui.Info("Installed Verilator versions:")
	for _, iv := range installed {
		ui.Info("  %s", iv.Tag)
	}
}

func init() {
	rootCmd.AddCommand(switchCmd)
}
