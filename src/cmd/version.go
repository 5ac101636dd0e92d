package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/tui"
)

// Version is stamped by the release build via ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the vvm version",
	Long:  `Display the current version of vvm.`,
	Run: func(cmd *cobra.Command, args []string) {
		content := fmt.Sprintf("vvm %s", tui.RenderVersion(Version))
		fmt.Println(tui.RenderInfoBox(content))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
