package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/tui"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var whereCmd = &cobra.Command{
	Use:   "where [tag]",
	Short: "Show the installation directory of a version",
	Long: `Display the full path to where a Verilator version is installed.

If no version is specified, shows the location of the currently active
version.

Examples:
  vvm where v5.024
  vvm where          # Shows the active version location`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var tag string

		// If no tag given, use the active version
		if len(args) == 0 {
			tag = activeTag()
			if tag == "" {
				ui.Error("No active version configured")
				ui.Info("Activate one with: vvm-switch <tag>")
				ui.Info("Or specify a version: vvm where <tag>")
				os.Exit(1)
			}
			ui.Info("Using active version: %s", ui.HighlightVersion(tag))
			fmt.Println()
		} else {
			tag = version.Canonical(args[0])
		}

		iv, err := registry.Find(config.DefaultPaths().Versions, tag)
		if err != nil {
			ui.Error("%v", err)
			ui.Info("Install it with: vvm build %s", tag)
			os.Exit(1)
		}

		fmt.Println(tui.RenderTitle("Verilator " + tag))
		fmt.Println(tui.RenderInfoBox(iv.Dir))
	},
}

func init() {
	rootCmd.AddCommand(whereCmd)
}
