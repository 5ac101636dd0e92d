package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/release"
	"github.com/vvm/vvm/src/internal/tui"
	"github.com/vvm/vvm/src/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the prebuilt release manifest",
	Long: `Force refresh the cached release manifest.

The 24-hour manifest cache is discarded and a fresh copy is fetched
from the manifest server. When the server cannot be reached, the
manifest bundled with vvm is used instead.

Example:
  vvm update`,
	Run: func(cmd *cobra.Command, args []string) {
		if release.OverrideActive() {
			ui.Info("Manifest override file is active: %s", config.ManifestOverridePath())
			ui.Info("Remove it to use the remote manifest again")

			m, err := release.DefaultSource().Load()
			if err != nil {
				ui.Error("Failed to load override manifest: %v", err)
				os.Exit(1)
			}
			ui.Success("Override manifest lists %d version(s)", len(m.Versions))
			return
		}

		ui.Info("Updating release manifest...")
		fmt.Println()

		m, fromRemote, err := release.ForceRefresh()
		if err != nil {
			ui.Error("Failed to update manifest: %v", err)
			os.Exit(1)
		}

		origin := "embedded"
		if fromRemote {
			origin = "remote"
		}

		table := tui.NewTable("Toolchain", "Versions", "Source")
		table.SetTitle("Manifest Refresh")
		table.AddRow("verilator", fmt.Sprintf("%d versions", len(m.Versions)), origin)
		fmt.Println(table.Render())
		fmt.Println()

		platform := release.CurrentPlatform()
		available := m.ListAvailableVersions(platform)
		ui.Info("%d version(s) have prebuilt archives for %s", len(available), platform)

		if fromRemote {
			ui.Success("Manifest updated successfully")
		} else {
			ui.Warning("Remote manifest unavailable, using the embedded copy")
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
