package cmd

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/release"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

const issueTrackerURL = "https://github.com/vvm/verilator-prebuilt/issues/new"

const issueBody = `## Build Request

**Version requested:** %s
**Target platform:** %s

Please publish a prebuilt Verilator archive for this version and platform.

<!-- Add context on why you need this version -->
`

var requestCmd = &cobra.Command{
	Use:   "request <tag>",
	Short: "Request a prebuilt archive for an unavailable version",
	Long: `Request a prebuilt archive for a version that is not currently published.

This command opens your browser to create a GitHub issue requesting an archive
for the given Verilator version on your current platform.

Example:
  vvm request v5.022`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tag := version.Canonical(args[0])
		platform := release.CurrentPlatform()

		// Nothing to request when the archive already exists
		if manifest, err := release.DefaultSource().Load(); err == nil {
			if manifest.CheckAvailability(tag, platform) == release.AvailabilityAvailable {
				ui.Success("A prebuilt archive for verilator %s on %s is already published", tag, platform)
				ui.Info("Install it with: vvm fetch %s", tag)
				return
			}
		}

		issueURL := buildIssueURL(tag, platform)

		ui.Info("Opening browser to request a build for verilator %s on %s...", tag, platform)
		fmt.Println()

		if err := openBrowser(issueURL); err != nil {
			ui.Warning("Could not open a browser: %v", err)
			ui.Info("File the request manually at:")
			fmt.Println()
			fmt.Println("  " + issueURL)
		}
	},
}

func buildIssueURL(tag, platform string) string {
	params := url.Values{}
	params.Set("title", fmt.Sprintf("build(verilator): %s %s", tag, platform))
	params.Set("labels", "build-request,"+platform)
	params.Set("body", fmt.Sprintf(issueBody, tag, platform))
	return issueTrackerURL + "?" + params.Encode()
}

func openBrowser(target string) error {
	var argv []string
	switch runtime.GOOS {
	case "darwin":
		argv = []string{"open", target}
	case "linux":
		argv = []string{"xdg-open", target}
	case "windows":
		// start treats & as a command separator unless escaped
		argv = []string{"cmd", "/c", "start", "", strings.ReplaceAll(target, "&", "^&")}
	default:
		return fmt.Errorf("no browser opener for %s", runtime.GOOS)
	}
	return exec.Command(argv[0], argv[1:]...).Start()
}

func init() {
	rootCmd.AddCommand(requestCmd)
}
