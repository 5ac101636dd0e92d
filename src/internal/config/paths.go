// Package config manages vvm configuration including paths and user settings
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/vvm/vvm/src/internal/constants"
)

const (
	// SettingsFileName is the name of the settings file
	SettingsFileName = "settings.json"

	// ManifestCacheFileName is the name of the cached release manifest file
	ManifestCacheFileName = "releases.json"

	// ManifestOverrideFileName is the name of the user-provided release manifest file
	ManifestOverrideFileName = "verilator.json"
)

// Paths holds the vvm directory layout under the root
type Paths struct {
	Root     string // ~/.vvm unless VVM_ROOT overrides it
	Versions string // installed toolchains
	Mirror   string // git mirror clones
	Config   string // settings and manifest overrides
	Cache    string // downloaded archives and cached manifests
}

var (
	pathsMu     sync.Mutex
	cachedPaths *Paths
)

// DefaultPaths returns the vvm directory layout. The layout is resolved
// once and cached; ResetPathsCache discards it.
func DefaultPaths() *Paths {
	pathsMu.Lock()
	defer pathsMu.Unlock()
	if cachedPaths == nil {
		cachedPaths = resolvePaths()
	}
	return cachedPaths
}

// ResetPathsCache discards the cached layout so the next DefaultPaths
// call resolves VVM_ROOT again. Tests use this together with t.Setenv.
func ResetPathsCache() {
	pathsMu.Lock()
	defer pathsMu.Unlock()
	cachedPaths = nil
}

func resolvePaths() *Paths {
	root := rootDir()
	return &Paths{
		Root:     root,
		Versions: filepath.Join(root, "versions"),
		Mirror:   filepath.Join(root, "mirror"),
		Config:   filepath.Join(root, "config"),
		Cache:    filepath.Join(root, "cache"),
	}
}

// rootDir resolves the vvm root: VVM_ROOT when set, otherwise ~/.vvm
func rootDir() string {
	if root := os.Getenv("VVM_ROOT"); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No resolvable home; fall back to a relative directory
		return ".vvm"
	}
	return filepath.Join(home, ".vvm")
}

// InstallDir returns the install prefix for a Verilator tag
func InstallDir(tag string) string {
	return filepath.Join(DefaultPaths().Versions, constants.InstallDirPrefix+tag)
}

// MirrorRepoDir returns the path of the mirror working clone
func MirrorRepoDir() string {
	return filepath.Join(DefaultPaths().Mirror, "verilator")
}

// SettingsPath returns the path to the settings file
func SettingsPath() string {
	return filepath.Join(DefaultPaths().Config, SettingsFileName)
}

// ManifestCachePath returns the path to the cached release manifest
func ManifestCachePath() string {
	return filepath.Join(DefaultPaths().Cache, ManifestCacheFileName)
}

// ManifestOverridePath returns the path where a user-provided release
// manifest takes precedence over the remote one
func ManifestOverridePath() string {
	return filepath.Join(DefaultPaths().Config, ManifestOverrideFileName)
}

// EnsureDirectories creates the vvm directory tree
func EnsureDirectories() error {
	p := DefaultPaths()
	for _, dir := range []string{p.Root, p.Versions, p.Mirror, p.Config, p.Cache} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
