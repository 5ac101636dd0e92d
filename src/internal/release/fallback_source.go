package release

import (
	"github.com/vvm/vvm/src/internal/ui"
)

// FallbackSource answers from its primary Source and degrades to the
// fallback when the primary cannot deliver.
type FallbackSource struct {
	primary  Source
	fallback Source
}

// NewFallbackSource chains primary and fallback into one Source.
func NewFallbackSource(primary, fallback Source) *FallbackSource {
	return &FallbackSource{primary: primary, fallback: fallback}
}

// Load asks the primary source first and the fallback on any error.
func (s *FallbackSource) Load() (*Manifest, error) {
	m, err := s.primary.Load()
	if err != nil {
		ui.Debug("Primary manifest source failed: %v, falling back", err)
		return s.fallback.Load()
	}
	return m, nil
}
