package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/shellenv"
	"github.com/vvm/vvm/src/internal/ui"
)

var restoreCmd = &cobra.Command{
	Use:   "restore-bashrc",
	Short: "Restore the startup file to its pre-vvm state",
	Long: `Undo vvm's edits to the shell startup file.

When the backup taken before the first switch still exists, the file is
restored from it byte for byte and the backup is kept. Without a
backup, only the lines vvm added are removed; everything else stays,
including edits made after the first switch.

Example:
  vvm-switch restore-bashrc`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.LoadSettings()
		if err != nil {
			ui.Error("Failed to load settings: %v", err)
			os.Exit(1)
		}

		fmt.Printf("\n")
		ui.Warning("This will rewrite:")
		ui.Info("  %s", settings.RCFile)

		if !ui.Confirm("Restore it to its pre-vvm state?", false) {
			ui.Info("Restore canceled")
			return
		}

		fromBackup, err := shellenv.Restore(settings.RCFile)
		if err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}

		if fromBackup {
			ui.Success("Restored %s from backup", settings.RCFile)
			ui.Info("Backup kept at %s", shellenv.BackupPath(settings.RCFile))
		} else {
			ui.Success("Removed vvm's lines from %s", settings.RCFile)
			ui.Warning("No backup was found, the file was cleaned line by line instead")
		}

		ui.Info("Open a new shell for the change to take effect")
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
