// Package normalize fixes up install layouts so downstream makefiles
// find support files at canonical locations. Source builds already
// place include, examples and bin at the prefix root; prebuilt
// archives nest them under share/verilator.
package normalize

import (
	"fmt"
	"os"
	"path/filepath"
)

// nested is the subtree prebuilt archives hide support files under
const nested = "share/verilator"

// canonicalNames are the entries downstream tooling expects at the
// prefix root
var canonicalNames = []string{"include", "examples", "bin"}

// Normalize creates relative symlinks at the prefix root for every
// canonical name that is missing but present under share/verilator.
// Existing entries are left alone, so running it again is a no-op.
// Returns the names that were linked.
func Normalize(installDir string) ([]string, error) {
	var created []string
	for _, name := range canonicalNames {
		canonical := filepath.Join(installDir, name)
		if _, err := os.Lstat(canonical); err == nil {
			continue
		}

		target := filepath.Join(nested, name)
		if _, err := os.Stat(filepath.Join(installDir, target)); err != nil {
			continue
		}

		// Relative target keeps the install relocatable
		if err := os.Symlink(target, canonical); err != nil {
			return created, fmt.Errorf("failed to link %s: %w", name, err)
		}
		created = append(created, name)
	}
	return created, nil
}

// VerifyLayout reports whether the file downstream builds depend on
// most, include/verilated.mk, is reachable from the prefix root.
// Callers treat a false result as a warning, not a failure.
func VerifyLayout(installDir string) bool {
	_, err := os.Stat(filepath.Join(installDir, "include", "verilated.mk"))
	return err == nil
}
