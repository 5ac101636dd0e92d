package release

import (
	"errors"
	"testing"
)

// staticSource returns a fixed manifest or error
type staticSource struct {
	manifest *Manifest
	err      error
}

func (s *staticSource) Load() (*Manifest, error) {
	return s.manifest, s.err
}

func manifestWithTag(tag, sha string) *Manifest {
	return &Manifest{
		Version: 1,
		Versions: map[string]map[string]*Download{
			tag: {
				"linux-amd64": {URL: "https://example.com/verilator.tar.gz", SHA256: sha},
			},
		},
	}
}

func TestFallbackSource(t *testing.T) {
	primary := manifestWithTag("v5.034", "primary")
	fallback := manifestWithTag("v5.032", "fallback")

	tests := []struct {
		name     string
		primary  Source
		fallback Source
		wantTag  string
		wantErr  bool
	}{
		{
			name:     "primary healthy",
			primary:  &staticSource{manifest: primary},
			fallback: &staticSource{manifest: fallback},
			wantTag:  "v5.034",
		},
		{
			name:     "primary fails",
			primary:  &staticSource{err: errors.New("network error")},
			fallback: &staticSource{manifest: fallback},
			wantTag:  "v5.032",
		},
		{
			name:     "primary manifest missing",
			primary:  &staticSource{err: &ErrManifestNotFound{Origin: "https://example.com/verilator.json"}},
			fallback: &staticSource{manifest: fallback},
			wantTag:  "v5.032",
		},
		{
			name:     "both fail",
			primary:  &staticSource{err: errors.New("primary down")},
			fallback: &staticSource{err: errors.New("fallback down")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewFallbackSource(tt.primary, tt.fallback).Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := m.Versions[tt.wantTag]; !ok {
				t.Errorf("manifest versions = %v, want %q present", m.ListVersions(), tt.wantTag)
			}
		})
	}
}
