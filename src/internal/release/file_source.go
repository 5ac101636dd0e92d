package release

import (
	"os"
)

// FileSource reads the release manifest from a file on disk.
// A manifest placed at the override path takes precedence over the remote
// source, which lets users point fetch at their own archive host.
type FileSource struct {
	path string
}

// NewFileSource creates a Source that reads the manifest from the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and parses the manifest file.
func (s *FileSource) Load() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrManifestNotFound{Origin: s.path}
		}
		return nil, err
	}

	return ParseManifest(data)
}
