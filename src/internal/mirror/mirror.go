// Package mirror manages the shared working clone of the Verilator repository
package mirror

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// runner executes a command in dir and returns its combined output.
// Tests swap this out to avoid real subprocesses.
type runner func(dir, name string, args ...string) ([]byte, error)

func runCommand(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Mirror is a git clone shared by all version builds. Builds check out
// tags in place; there is one clone per vvm root, not one per version.
type Mirror struct {
	URL string
	Dir string

	run runner
}

// New creates a mirror handle for the repository at url cloned into dir
func New(url, dir string) *Mirror {
	return &Mirror{
		URL: url,
		Dir: dir,
		run: runCommand,
	}
}

// Exists reports whether the clone directory is present. A present but
// corrupt clone still counts; git operations on it report their own errors.
func (m *Mirror) Exists() bool {
	_, err := os.Stat(m.Dir)
	return err == nil
}

// Ensure makes the mirror usable: clone when the directory is missing,
// otherwise fetch all refs and tags from upstream
func (m *Mirror) Ensure() error {
	if m.Exists() {
		return m.fetch()
	}
	return m.clone()
}

func (m *Mirror) clone() error {
	if err := os.MkdirAll(filepath.Dir(m.Dir), 0755); err != nil {
		return fmt.Errorf("failed to create mirror directory: %w", err)
	}

	output, err := m.run("", "git", "clone", m.URL, m.Dir)
	if err != nil {
		return fmt.Errorf("git clone %s failed: %w\n%s", m.URL, err, string(output))
	}
	return nil
}

func (m *Mirror) fetch() error {
	output, err := m.run(m.Dir, "git", "fetch", "--all", "--tags")
	if err != nil {
		return fmt.Errorf("git fetch failed: %w\n%s", err, string(output))
	}
	return nil
}

// Checkout moves the working tree to a tag. A detached HEAD is fine,
// builds only read the tree.
func (m *Mirror) Checkout(tag string) error {
	output, err := m.run(m.Dir, "git", "checkout", tag)
	if err != nil {
		return fmt.Errorf("git checkout %s failed: %w\n%s", tag, err, string(output))
	}
	return nil
}

// Commit resolves a ref to its commit hash. Annotated tags resolve to
// the tagged commit, not the tag object.
func (m *Mirror) Commit(ref string) (string, error) {
	output, err := m.run(m.Dir, "git", "rev-parse", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("git rev-parse %s failed: %w\n%s", ref, err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// Tags lists all tags known to the clone
func (m *Mirror) Tags() ([]string, error) {
	output, err := m.run(m.Dir, "git", "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("git tag --list failed: %w\n%s", err, string(output))
	}

	var tags []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}
