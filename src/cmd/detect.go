package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/detect"
	"github.com/vvm/vvm/src/internal/tui"
	"github.com/vvm/vvm/src/internal/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Find Verilator installations outside vvm",
	Long: `Scan PATH and well-known system locations for Verilator installations
that vvm does not manage.

This is a report-only command; nothing is modified. It helps spot a
system package that would shadow the vvm-managed toolchain.

Example:
  vvm detect`,
	Run: func(cmd *cobra.Command, args []string) {
		spinner := ui.NewSpinner("Scanning for Verilator installations...")
		spinner.Start()

		scanner := detect.New(config.DefaultPaths().Versions)
		installs := scanner.Scan()

		if len(installs) == 0 {
			spinner.Success("No Verilator installations found outside vvm")
			return
		}

		spinner.Success(fmt.Sprintf("Found %d installation(s)", len(installs)))

		table := tui.NewTable("Version", "Source", "Path")
		table.SetTitle("Detected Installations")

		for _, install := range installs {
			table.AddRow(install.Version, install.Source, install.Path)
		}

		fmt.Println()
		fmt.Println(table.Render())

		ui.Info("These installations are not managed by vvm")
		ui.Info("A system install earlier in PATH can shadow the active vvm version")
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
