// Package release provides access to the manifest of prebuilt Verilator archives.
// Manifests are loaded through layered sources: a local override file, a cached
// remote endpoint, and an embedded copy bundled into the binary.
package release

import (
	"encoding/json"
	"fmt"
)

// SupportedManifestVersion is the manifest schema version this binary understands.
const SupportedManifestVersion = 1

// Download describes a prebuilt archive for one version on one platform.
type Download struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256"`
}

// Manifest maps release tags to per-platform download entries.
// A platform key mapped to null means no prebuilt exists for that platform.
type Manifest struct {
	Version   int                             `json:"version"`
	Generated string                          `json:"generated,omitempty"`
	Versions  map[string]map[string]*Download `json:"versions"`
}

// Availability describes whether a prebuilt archive exists for a version/platform pair.
type Availability int

const (
	// AvailabilityUnknown means the manifest has no entry for the pair.
	AvailabilityUnknown Availability = iota
	// AvailabilityAvailable means a prebuilt archive exists.
	AvailabilityAvailable
	// AvailabilityUnavailable means the manifest explicitly marks the pair as having no build.
	AvailabilityUnavailable
)

// ParseManifest parses and validates manifest JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse release manifest: %w", err)
	}

	if m.Version != SupportedManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d", m.Version)
	}

	return &m, nil
}

// GetDownload returns the download entry for a tag and platform, or
// nil when the manifest has no usable entry for that combination.
func (m *Manifest) GetDownload(tag, platform string) *Download {
	platforms, ok := m.Versions[tag]
	if !ok {
		return nil
	}
	return platforms[platform]
}

// CheckAvailability reports whether a prebuilt archive exists for a tag and platform.
func (m *Manifest) CheckAvailability(tag, platform string) Availability {
	platforms, ok := m.Versions[tag]
	if !ok {
		return AvailabilityUnknown
	}

	download, ok := platforms[platform]
	if !ok {
		return AvailabilityUnknown
	}

	if download == nil {
		return AvailabilityUnavailable
	}

	return AvailabilityAvailable
}

// ListVersions returns all tags present in the manifest, in map order.
func (m *Manifest) ListVersions() []string {
	versions := make([]string, 0, len(m.Versions))
	for tag := range m.Versions {
		versions = append(versions, tag)
	}
	return versions
}

// ListAvailableVersions returns the tags that have a prebuilt archive
// for the given platform.
func (m *Manifest) ListAvailableVersions(platform string) []string {
	var versions []string
	for tag, platforms := range m.Versions {
		if platforms[platform] != nil {
			versions = append(versions, tag)
		}
	}
	return versions
}
