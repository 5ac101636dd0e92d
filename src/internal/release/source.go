package release

import (
	"errors"
	"fmt"
)

// Source is the interface for retrieving the release manifest from various backends.
// Implementations include an embedded copy, the filesystem, and remote HTTP.
type Source interface {
	// Load retrieves and parses the release manifest. A backend with
	// nothing to serve returns an ErrManifestNotFound.
	Load() (*Manifest, error)
}

// ErrManifestNotFound is returned when a source has no manifest to serve.
type ErrManifestNotFound struct {
	Origin string
}

func (e *ErrManifestNotFound) Error() string {
	return fmt.Sprintf("release manifest not found: %s", e.Origin)
}

// IsManifestNotFound reports whether err means the source had no
// manifest, as opposed to a fetch or parse failure.
func IsManifestNotFound(err error) bool {
	var target *ErrManifestNotFound
	return errors.As(err, &target)
}
