package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/mirror"
	"github.com/vvm/vvm/src/internal/ui"
)

// buildTools are the host programs a source build needs
var buildTools = []string{"git", "make", "autoconf", "perl", "g++"}

// lookPath is swapped out in tests
var lookPath = exec.LookPath

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up vvm (directories, build tools, repository mirror)",
	Long: `Set up vvm by creating its directory tree, checking for the host
build tools a Verilator source build needs, and preparing the local
repository mirror.

What setup does:
  - Creates the ~/.vvm directory structure
  - Checks that git, make, autoconf, perl and g++ are available
  - Clones the Verilator repository mirror (or updates an existing one)

Run this command after installing vvm for the first time. It is safe to
run again at any time.

Example:
  vvm setup`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Header("Setting up vvm...")

		spinner := ui.NewSpinner("Creating the directory tree...")
		spinner.Start()

		if err := config.EnsureDirectories(); err != nil {
			spinner.Error("Could not create the directory tree")
			ui.Error("%v", err)
			os.Exit(1)
		}

		spinner.Success("Directory tree ready")

		missing := missingBuildTools()
		if len(missing) > 0 {
			ui.Warning("Missing build tools: %s", strings.Join(missing, ", "))
			ui.Info("Install them with your package manager before running 'vvm build'")
		} else {
			ui.Success("Build tools found (%s)", strings.Join(buildTools, ", "))
		}

		settings, err := config.LoadSettings()
		if err != nil {
			ui.Error("Failed to load settings: %v", err)
			os.Exit(1)
		}

		m := mirror.New(settings.RepoURL, config.MirrorRepoDir())
		action := "Cloning"
		if m.Exists() {
			action = "Updating"
		}

		spinner = ui.NewSpinner(fmt.Sprintf("%s repository mirror (this can take a few minutes)...", action))
		spinner.Start()

		if err := m.Ensure(); err != nil {
			spinner.Error("Repository mirror setup failed")
			ui.Error("%v", err)
			os.Exit(1)
		}

		spinner.Success("Repository mirror ready")

		ui.Success("vvm is ready!")
		ui.Info("\nGetting started:")
		ui.Info("  1. See available versions: %s", ui.Highlight("vvm list"))
		ui.Info("  2. Build one: %s", ui.Highlight("vvm build <tag>"))
		ui.Info("  3. Activate it: %s", ui.Highlight("vvm-switch <tag>"))
	},
}

// missingBuildTools reports which of the required host programs are
// absent from PATH
func missingBuildTools() []string {
	missing := []string{}
	for _, tool := range buildTools {
		if _, err := lookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	return missing
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
