package release

import (
	"os"
	"sync"

	"github.com/vvm/vvm/src/internal/config"
)

var (
	sourceMu     sync.Mutex
	activeSource Source
	activeCached *CachedSource
)

// DefaultSource returns the layered release manifest source:
//  1. A local override file wins outright (~/.vvm/config/verilator.json)
//  2. Otherwise the remote manifest (manifests.vvm.dev) through a
//     24 hour disk cache
//  3. With the embedded manifest as the offline fallback
//
// The stack is built once and reused for all subsequent calls.
func DefaultSource() Source {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	if activeSource == nil {
		activeSource = layeredSource()
	}
	return activeSource
}

// layeredSource builds the stack described on DefaultSource.
func layeredSource() Source {
	// A manifest dropped into the config directory wins outright.
	// Errors in an override should be loud, so no fallback behind it.
	override := config.ManifestOverridePath()
	if _, err := os.Stat(override); err == nil {
		return NewFileSource(override)
	}

	remote := NewHTTPSource(DefaultRemoteURL)
	activeCached = NewCachedSource(remote, config.ManifestCachePath(), DefaultCacheTTL)
	return NewFallbackSource(activeCached, NewEmbeddedSource())
}

// ForceRefresh clears the manifest cache and fetches fresh data.
// The second return reports whether the manifest came from the remote
// (true) or the embedded copy (false).
func ForceRefresh() (*Manifest, bool, error) {
	DefaultSource()

	sourceMu.Lock()
	cached := activeCached
	sourceMu.Unlock()

	if cached != nil {
		if m, err := cached.ForceRefresh(); err == nil {
			return m, true, nil
		}
	}

	m, err := NewEmbeddedSource().Load()
	if err != nil {
		return nil, false, err
	}
	return m, false, nil
}

// OverrideActive reports whether a local manifest override file is in place.
func OverrideActive() bool {
	_, err := os.Stat(config.ManifestOverridePath())
	return err == nil
}

// ResetDefaultSource clears the cached source stack so the next call
// to DefaultSource rebuilds it. Tests rely on this between cases.
func ResetDefaultSource() {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	activeSource = nil
	activeCached = nil
}
