package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/shellenv"
	"github.com/vvm/vvm/src/internal/ui"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active version",
	Long: `Show which Verilator installation this session uses and which one the
startup file selects for new shells. The two differ until a new shell
sources the startup file after a switch.

Example:
  vvm-switch current`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.LoadSettings()
		if err != nil {
			ui.Error("Failed to load settings: %v", err)
			os.Exit(1)
		}

		session := shellenv.SessionRoot()
		persisted, err := shellenv.ActiveRoot(settings.RCFile)
		if err != nil {
			ui.Warning("Could not read %s: %v", settings.RCFile, err)
		}

		if session == "" && persisted == "" {
			ui.Info("No active version configured")
			ui.Info("Activate one with: vvm-switch <tag>")
			return
		}

		if session != "" {
			ui.Println("This session:  VERILATOR_ROOT=%s", session)
		} else {
			ui.Info("This session:  VERILATOR_ROOT is not set")
		}

		if persisted != "" {
			ui.Println("New shells:    VERILATOR_ROOT=%s", persisted)

			if tag := tagForRoot(persisted); tag != "" {
				ui.Println("Active version: %s", ui.HighlightVersion(tag))
			} else {
				ui.Warning("The persisted value points outside the vvm versions directory")
			}

			if shellenv.InPath(filepath.Join(persisted, "bin")) {
				ui.Success("The active bin directory is on PATH")
			} else {
				ui.Warning("The active bin directory is not on this session's PATH")
				ui.Info("Open a new shell or run: source %s", settings.RCFile)
			}
		}

		if session != "" && persisted != "" && session != persisted {
			ui.Warning("This session uses a different version than new shells will")
		}
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
}
