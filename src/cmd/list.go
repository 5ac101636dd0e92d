package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/mirror"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/tui"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List Verilator release tags available to build",
	Long: `Display the Verilator release tags known to the local repository mirror.

Tags are shown newest first. Installed versions are marked with a ✓
indicator and the active version is labeled in the status column.

Examples:
  vvm list
  vvm list --filter v5.0
  vvm list --limit 20`,
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("filter")
		limit, _ := cmd.Flags().GetInt("limit")

		settings, err := config.LoadSettings()
		if err != nil {
			ui.Error("Failed to load settings: %v", err)
			os.Exit(1)
		}

		m := mirror.New(settings.RepoURL, config.MirrorRepoDir())
		if !m.Exists() {
			ui.Error("Repository mirror not found")
			ui.Info("Run 'vvm setup' first")
			os.Exit(1)
		}

		tags, err := m.Tags()
		if err != nil {
			ui.Error("Failed to list tags: %v", err)
			os.Exit(1)
		}

		// Keep release tags that pass the filter, newest first
		var releases []string
		total := 0
		for _, tag := range tags {
			if !version.IsReleaseTag(tag) {
				continue
			}
			total++
			if filter != "" && !strings.Contains(tag, filter) {
				continue
			}
			releases = append(releases, tag)
		}
		releases = version.SortTagsDesc(releases)

		if total == 0 {
			ui.Warning("No release tags found")
			ui.Info("Refresh the mirror with: vvm setup")
			return
		}
		if len(releases) == 0 {
			ui.Warning("No release tags match %q", filter)
			return
		}

		installedTags := map[string]bool{}
		if list, err := registry.List(config.DefaultPaths().Versions); err != nil {
			ui.Warning("Could not read the versions directory: %v", err)
		} else {
			for _, iv := range list {
				installedTags[iv.Tag] = true
			}
		}

		active := activeTag()

		if limit < 1 {
			limit = len(releases)
		}

		stdin := bufio.NewScanner(os.Stdin)
		shown := 0
	pages:
		for shown < len(releases) {
			page := releases[shown:min(shown+limit, len(releases))]

			table := tui.NewTable("", "Version", "Status")
			table.SetTitle("Verilator Releases")
			for _, tag := range page {
				var marker string
				if installedTags[tag] {
					marker = tui.GetCheckMark()
				}

				status := ""
				switch {
				case tag == active:
					status = "active"
				case installedTags[tag]:
					status = "installed"
				}

				table.AddRow(marker, tag, status)
			}

			fmt.Println()
			fmt.Println(table.Render())

			shown += len(page)
			if shown == len(releases) {
				fmt.Println()
				ui.Success("Showing all %d version(s)", len(releases))
				break
			}

			ui.Printf("Showing %d of %d. Press Enter for more (q to quit): ", shown, len(releases))
			stdin.Scan()
			switch strings.ToLower(strings.TrimSpace(stdin.Text())) {
			case "q", "quit":
				break pages
			}
		}

		fmt.Println()
		ui.Info("Build a version with: vvm build <tag>")
	},
}

func init() {
	listCmd.Flags().StringP("filter", "f", "", "Filter tags by substring (e.g., 'v5.0')")
	listCmd.Flags().IntP("limit", "l", 50, "Number of versions to show per page")
	rootCmd.AddCommand(listCmd)
}
