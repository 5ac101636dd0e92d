// Package registry tracks the Verilator versions installed under the
// versions directory. The directory layout is the source of truth;
// there is no separate database to drift out of sync.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvm/vvm/src/internal/constants"
	"github.com/vvm/vvm/src/internal/version"
)

// InstalledVersion is one usable install under the versions directory
type InstalledVersion struct {
	Tag        string
	Dir        string
	Provenance *Provenance // nil when no readable .build-info exists
}

// NotInstalledError reports a tag with no usable install
type NotInstalledError struct {
	Tag string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("verilator %s is not installed", e.Tag)
}

// BinaryPath returns the expected verilator binary inside an install dir
func BinaryPath(dir string) string {
	return filepath.Join(dir, "bin", "verilator")
}

// List scans versionsDir for usable installs. A directory counts only
// when it follows the verilator_<tag> naming convention and contains
// the bin/verilator binary; partially built directories are skipped.
// Order follows directory enumeration, callers sort for display.
func List(versionsDir string) ([]InstalledVersion, error) {
	if _, err := os.Stat(versionsDir); os.IsNotExist(err) {
		return []InstalledVersion{}, nil
	}

	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		return nil, fmt.Errorf("reading versions directory: %w", err)
	}

	installed := make([]InstalledVersion, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), constants.InstallDirPrefix) {
			continue
		}

		dir := filepath.Join(versionsDir, entry.Name())
		if _, err := os.Stat(BinaryPath(dir)); err != nil {
			continue
		}

		iv := InstalledVersion{
			Tag: strings.TrimPrefix(entry.Name(), constants.InstallDirPrefix),
			Dir: dir,
		}
		// Provenance is optional metadata, an unreadable file is not an error
		if prov, err := ReadProvenance(dir); err == nil {
			iv.Provenance = prov
		}
		installed = append(installed, iv)
	}

	return installed, nil
}

// Find returns the install for a tag, or NotInstalledError
func Find(versionsDir, tag string) (*InstalledVersion, error) {
	installed, err := List(versionsDir)
	if err != nil {
		return nil, err
	}
	for i := range installed {
		if installed[i].Tag == tag {
			return &installed[i], nil
		}
	}
	return nil, &NotInstalledError{Tag: tag}
}

// IsInstalled reports whether a tag has a usable install
func IsInstalled(versionsDir, tag string) bool {
	_, err := Find(versionsDir, tag)
	return err == nil
}

// SortDesc orders installs by release precedence, newest first.
// Installs whose tag does not parse sort last, in name order.
func SortDesc(installed []InstalledVersion) {
	sort.Slice(installed, func(i, j int) bool {
		vi, erri := version.Parse(installed[i].Tag)
		vj, errj := version.Parse(installed[j].Tag)
		if erri != nil || errj != nil {
			if (erri == nil) != (errj == nil) {
				return erri == nil
			}
			return installed[i].Tag < installed[j].Tag
		}
		return vi.GreaterThan(vj)
	})
}
