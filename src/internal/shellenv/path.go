package shellenv

import (
	"os"
	"path/filepath"
	"strings"
)

// InPath reports whether a directory is live in the current PATH.
// Used to tell users whether their running shell already sees the
// active version or still needs to source the startup file.
func InPath(dir string) bool {
	pathEnv := os.Getenv("PATH")

	dir = filepath.Clean(dir)
	for _, p := range strings.Split(pathEnv, ":") {
		if filepath.Clean(p) == dir {
			return true
		}
	}
	return false
}
