package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/builder"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var buildMultipleYesFlag bool

var buildMultipleCmd = &cobra.Command{
	Use:   "build-multiple <tag>...",
	Short: "Build several Verilator versions in one run",
	Long: `Build several Verilator release tags sequentially. A failing build
does not stop the batch; the outcome of every tag is reported in a
summary at the end.

Examples:
  vvm build-multiple v5.024 v5.028 v5.036
  vvm build-multiple v5.024 v5.036 --yes   # Skip confirmation prompt`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		buildMultiple(args)
	},
}

func init() {
	rootCmd.AddCommand(buildMultipleCmd)
	buildMultipleCmd.Flags().BoolVarP(&buildMultipleYesFlag, "yes", "y", false, "Skip confirmation prompt")
}

// buildTask represents one version in the batch
type buildTask struct {
	tag              string
	alreadyInstalled bool
}

// planBuildTasks normalizes and de-duplicates the requested tags,
// keeping argument order
func planBuildTasks(args []string) []buildTask {
	versionsDir := config.DefaultPaths().Versions

	seen := make(map[string]bool)
	var tasks []buildTask
	for _, arg := range args {
		tag := version.Canonical(arg)
		if seen[tag] {
			continue
		}
		seen[tag] = true

		tasks = append(tasks, buildTask{
			tag:              tag,
			alreadyInstalled: registry.IsInstalled(versionsDir, tag),
		})
	}

	return tasks
}

// showBuildPlan displays the build plan and returns counts
func showBuildPlan(tasks []buildTask) (toBuild, alreadyInstalled int) {
	ui.Header("\nBuild Plan:")

	for _, task := range tasks {
		if task.alreadyInstalled {
			ui.Info("  ✓ verilator %s (already installed)", task.tag)
			alreadyInstalled++
			continue
		}
		ui.Info("  → verilator %s (will build)", task.tag)
		toBuild++
	}

	return toBuild, alreadyInstalled
}

// promptBuildConfirmation asks before starting the batch unless --yes
// was given
func promptBuildConfirmation(toBuild, alreadyInstalled int) bool {
	if buildMultipleYesFlag {
		return true
	}

	ui.Info("\n%d version(s) will be built, %d already installed", toBuild, alreadyInstalled)
	return ui.Confirm("Continue?", true)
}

// runBatch builds every pending task, reporting per-tag outcomes
func runBatch(b *builder.Builder, tasks []buildTask) (built int, failed []string) {
	ui.Header("\nBuilding versions...")

	for _, task := range tasks {
		if task.alreadyInstalled {
			continue
		}

		ui.Progress("Building verilator %s...", task.tag)

		if _, err := b.Build(task.tag); err != nil {
			ui.Error("Failed to build %s: %v", task.tag, err)
			failed = append(failed, task.tag)
			continue
		}

		ui.Success("Built verilator %s", task.tag)
		built++
	}

	return built, failed
}

// showBuildSummary displays the final batch summary
func showBuildSummary(built, alreadyInstalled int, failed []string) {
	ui.Header("\nBuild Summary:")

	if built > 0 {
		ui.Success("Successfully built: %d version(s)", built)
	}
	if alreadyInstalled > 0 {
		ui.Info("Already installed: %d version(s)", alreadyInstalled)
	}

	if len(failed) == 0 {
		ui.Success("\n✓ All versions built successfully!")
		return
	}

	ui.Error("Failed to build: %d version(s)", len(failed))
	for _, tag := range failed {
		ui.Error("  - %s", tag)
	}
}

func buildMultiple(args []string) {
	tasks := planBuildTasks(args)
	toBuild, alreadyInstalled := showBuildPlan(tasks)

	if toBuild == 0 {
		ui.Success("\nAll requested versions are already installed!")
		return
	}
	if !promptBuildConfirmation(toBuild, alreadyInstalled) {
		ui.Info("Build canceled")
		return
	}

	b, err := newBuilder()
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}

	built, failed := runBatch(b, tasks)
	showBuildSummary(built, alreadyInstalled, failed)

	if len(failed) > 0 {
		os.Exit(1)
	}
}
