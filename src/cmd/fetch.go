package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vvm/vvm/src/internal/config"
	"github.com/vvm/vvm/src/internal/download"
	"github.com/vvm/vvm/src/internal/normalize"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/release"
	"github.com/vvm/vvm/src/internal/ui"
	"github.com/vvm/vvm/src/internal/version"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <tag>",
	Short: "Install a prebuilt Verilator archive",
	Long: `Install a Verilator version from a prebuilt archive instead of
building it from source.

The archive for the current platform is looked up in the release
manifest, downloaded with checksum verification and unpacked into the
versions directory. Prebuilt archives are not published for every
version and platform; 'vvm build' always works as the fallback.

Examples:
  vvm fetch v5.034
  vvm fetch 5.036`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tag := version.Canonical(args[0])

		if err := config.EnsureDirectories(); err != nil {
			ui.Error("Failed to create vvm directories: %v", err)
			os.Exit(1)
		}

		if registry.IsInstalled(config.DefaultPaths().Versions, tag) {
			ui.Success("verilator %s is already installed at %s", tag, config.InstallDir(tag))
			return
		}

		platform := release.CurrentPlatform()
		if !release.IsValidPlatform(platform) {
			ui.Error("Prebuilt archives are not published for %s", platform)
			ui.Info("Build from source instead: vvm build %s", tag)
			os.Exit(1)
		}

		manifest, err := release.DefaultSource().Load()
		if err != nil {
			ui.Error("Failed to load release manifest: %v", err)
			os.Exit(1)
		}

		switch manifest.CheckAvailability(tag, platform) {
		case release.AvailabilityUnknown:
			ui.Error("verilator %s is not in the release manifest", tag)
			ui.Info("Refresh the manifest with: vvm update")
			ui.Info("Or build from source: vvm build %s", tag)
			os.Exit(1)
		case release.AvailabilityUnavailable:
			ui.Error("No prebuilt archive for verilator %s on %s", tag, platform)
			ui.Info("Build from source instead: vvm build %s", tag)
			os.Exit(1)
		}

		ui.Header("Fetching verilator %s (%s)...", tag, platform)

		if err := installPrebuilt(tag, manifest.GetDownload(tag, platform)); err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}

		ui.Success("verilator %s installed successfully", tag)
		ui.Info("Location: %s", config.InstallDir(tag))
		ui.Info("Activate it with: vvm-switch %s", tag)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

// installPrebuilt downloads, verifies and unpacks an archive into the
// install prefix for tag. Staging happens under the cache directory so
// the final rename never crosses filesystems.
func installPrebuilt(tag string, dl *release.Download) error {
	tempDir, err := os.MkdirTemp(config.DefaultPaths().Cache, "fetch-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	ui.Progress("Downloading from %s", dl.URL)

	archivePath := filepath.Join(tempDir, archiveFileName(dl.URL))
	if err := download.FileVerified(dl.URL, archivePath, dl.SHA256); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	unpackDir := filepath.Join(tempDir, "unpacked")
	spinner := ui.NewSpinner("Unpacking archive...")
	spinner.Start()

	unpackErr := extractArchive(archivePath, unpackDir)
	if unpackErr == nil {
		// Release archives have verilator-<tag>-<platform>/ at the top
		unpackErr = download.StripTopLevelDir(unpackDir)
	}

	if unpackErr != nil {
		spinner.Error("Unpacking failed")
		return fmt.Errorf("unpacking %s: %w", filepath.Base(archivePath), unpackErr)
	}
	spinner.Success("Archive unpacked")

	installDir := config.InstallDir(tag)
	if err := os.Rename(unpackDir, installDir); err != nil {
		return fmt.Errorf("moving into the versions directory: %w", err)
	}

	if created, err := normalize.Normalize(installDir); err != nil {
		ui.Warning("Could not normalize install layout: %v", err)
	} else if len(created) > 0 {
		ui.Debug("Created compatibility links: %s", strings.Join(created, ", "))
	}

	if _, err := os.Stat(registry.BinaryPath(installDir)); err != nil {
		_ = os.RemoveAll(installDir)
		return fmt.Errorf("archive did not contain bin/verilator")
	}

	if !normalize.VerifyLayout(installDir) {
		ui.Warning("include/verilated.mk is missing, downstream builds against this install may fail")
	}

	prov := &registry.Provenance{
		Tag:    tag,
		Date:   time.Now().UTC().Format(time.RFC3339),
		Source: registry.SourcePrebuilt,
	}
	if err := registry.WriteProvenance(installDir, prov); err != nil {
		ui.Warning("Could not write install metadata: %v", err)
	}

	return nil
}

// archiveFileName derives the local file name for a download URL
func archiveFileName(rawURL string) string {
	trimmed := rawURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return path.Base(trimmed)
}

// extractArchive unpacks an archive based on its extension
func extractArchive(archivePath, destDir string) error {
	name := filepath.Base(archivePath)
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return download.ExtractTarGz(archivePath, destDir)
	case strings.HasSuffix(name, ".zip"):
		return download.ExtractZip(archivePath, destDir)
	case strings.HasSuffix(name, ".7z"):
		return download.Extract7z(archivePath, destDir)
	default:
		return fmt.Errorf("unsupported archive format: %s", name)
	}
}
