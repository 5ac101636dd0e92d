package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/shellenv"
	"github.com/vvm/vvm/src/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the versions you can switch to",
	Long: `List the Verilator versions installed under the versions directory.
The active version is marked.

Example:
  vvm-switch list`,
	Run: func(cmd *cobra.Command, args []string) {
		installed, err := registry.List(config.DefaultPaths().Versions)
		if err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}

		if len(installed) == 0 {
			ui.Info("No Verilator versions installed yet")
			ui.Info("Build one with: vvm build <tag>")
			return
		}

		registry.SortDesc(installed)

		active := ""
		if settings, err := config.LoadSettings(); err == nil {
			if root, err := shellenv.ActiveRoot(settings.RCFile); err == nil {
				active = tagForRoot(root)
			}
		}

		ui.Header("Installed Verilator versions:")
		for _, iv := range installed {
			if iv.Tag == active {
				ui.Println("  %s (active)", ui.HighlightVersion(iv.Tag))
			} else {
				ui.Println("  %s", ui.HighlightVersion(iv.Tag))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
