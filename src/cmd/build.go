package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/builder"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/mirror"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var buildCmd = &cobra.Command{
	Use:   "build <tag>",
	Short: "Build and install a Verilator version from source",
	Long: `Build a Verilator release tag from source and install it under the
versions directory.

The tag is checked out in the local repository mirror and compiled with
the standard autoconf/configure/make pipeline. A tag that is already
installed is left untouched.

Examples:
  vvm build v5.024
  vvm build 5.036`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tag := version.Canonical(args[0])

		b, err := newBuilder()
		if err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}

		result, err := b.Build(tag)
		if err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}

		if result.AlreadyInstalled {
			ui.Success("verilator %s is already installed at %s", result.Tag, result.Dir)
			return
		}

		ui.Success("Installed verilator %s at %s", result.Tag, result.Dir)
		ui.Info("Activate it with: vvm-switch %s", result.Tag)
	},
}

// newBuilder wires a builder over the configured repository mirror,
// refreshing the mirror first so new upstream tags are visible
func newBuilder() (*builder.Builder, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	m := mirror.New(settings.RepoURL, config.MirrorRepoDir())
	action := "Refreshing"
	if !m.Exists() {
		action = "Cloning"
	}

	spinner := ui.NewSpinner(action + " repository mirror...")
	spinner.Start()

	if err := m.Ensure(); err != nil {
		spinner.Error("Repository mirror update failed")
		return nil, err
	}

	spinner.Success("Repository mirror up to date")

	b := builder.New(config.DefaultPaths().Versions, config.MirrorRepoDir(), m)
	b.Jobs = settings.Jobs
	return b, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
