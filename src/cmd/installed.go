package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/constants"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/shellenv"
	"github.com/vvm/vvm/src/internal/tui"
	"github.com/vvm/vvm/src/internal/ui"
)

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "List installed Verilator versions",
	Long: `Display the Verilator versions installed under the versions directory,
with their build metadata where available. The active version is
marked and highlighted.

Example:
  vvm installed`,
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
		active := activeTag()

		table := tui.NewTable("", "Version", "Commit", "Built", "Path")
		table.SetTitle("Installed Versions")

		for _, iv := range installed {
			marker := ""
			if iv.Tag == active {
				marker = tui.GetCheckMark()
			}

			commit := ""
			built := ""
			if iv.Provenance != nil {
				commit = shortCommit(iv.Provenance.Commit)
				if commit == "" && iv.Provenance.Source == registry.SourcePrebuilt {
					commit = "(prebuilt)"
				}
				built = buildDate(iv.Provenance.Date)
			}

			if iv.Tag == active {
				table.AddActiveRow(marker, iv.Tag, commit, built, iv.Dir)
			} else {
				table.AddRow(marker, iv.Tag, commit, built, iv.Dir)
			}
		}

		fmt.Println(table.Render())

		if active == "" {
			ui.Info("No active version, set one with: vvm-switch <tag>")
		}
	},
}

// shortCommit abbreviates a full commit hash for display
func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

// buildDate trims a stored RFC3339 timestamp down to its date part
func buildDate(stamp string) string {
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		return t.Format("2006-01-02")
	}
	return stamp
}

// activeTag resolves the version persisted in the rc file, or "" when
// no assignment exists or it points outside a vvm install directory
func activeTag() string {
	settings, err := config.LoadSettings()
	if err != nil {
		return ""
	}

	root, err := shellenv.ActiveRoot(settings.RCFile)
	if err != nil || root == "" {
		return ""
	}

	base := filepath.Base(filepath.Clean(root))
	if !strings.HasPrefix(base, constants.InstallDirPrefix) {
		return ""
	}
	return strings.TrimPrefix(base, constants.InstallDirPrefix)
}

func init() {
	rootCmd.AddCommand(installedCmd)
}
