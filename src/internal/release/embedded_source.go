package release

import (
	_ "embed"
)

//go:embed data/verilator.json
var embeddedManifest []byte

// EmbeddedSource serves the release manifest bundled into the binary.
// It is the fallback of last resort and always available.
type EmbeddedSource struct{}

// NewEmbeddedSource creates a Source backed by the embedded manifest.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load parses the embedded manifest.
func (s *EmbeddedSource) Load() (*Manifest, error) {
	return ParseManifest(embeddedManifest)
}
