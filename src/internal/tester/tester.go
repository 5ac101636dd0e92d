// Package tester smoke-tests installed Verilator versions by running
// the real binary against a known-good lint input
package tester

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vvm/vvm/src/internal/registry"
)

//go:embed smoke.v
var smokeSource string

// SmokeFileName is the name the lint input is written under
const SmokeFileName = "smoke.v"

// Test steps
const (
	StepVersion = "version"
	StepLint    = "lint"
)

// RunError reports a failed test step. ScratchDir points at the
// retained working directory when the lint step failed, so the user
// can rerun the tool by hand.
type RunError struct {
	Step       string
	Output     string
	ScratchDir string
	Err        error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("verilator %s step failed: %v", e.Step, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Report describes a successful smoke test
type Report struct {
	Tag        string
	Binary     string
	VersionOut string
}

// runner executes a command in dir and returns its combined output
type runner func(dir, name string, args ...string) ([]byte, error)

func runCommand(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Tester exercises installs under a versions directory
type Tester struct {
	VersionsDir string

	run runner
}

// New creates a tester over versionsDir
func New(versionsDir string) *Tester {
	return &Tester{
		VersionsDir: versionsDir,
		run:         runCommand,
	}
}

// Run smoke-tests a tag: ask the binary for its version, then lint a
// small known-good design in a scratch directory. The scratch
// directory is removed on success and retained on failure.
func (t *Tester) Run(tag string) (*Report, error) {
	iv, err := registry.Find(t.VersionsDir, tag)
	if err != nil {
		return nil, err
	}
	binary := registry.BinaryPath(iv.Dir)

	versionOut, err := t.run("", binary, "--version")
	if err != nil {
		return nil, &RunError{
			Step:   StepVersion,
			Output: string(versionOut),
			Err:    err,
		}
	}

	scratch, err := os.MkdirTemp("", "vvm-smoke-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(scratch, SmokeFileName), []byte(smokeSource), 0644); err != nil {
		_ = os.RemoveAll(scratch)
		return nil, fmt.Errorf("failed to write lint input: %w", err)
	}

	lintOut, err := t.run(scratch, binary, "--lint-only", SmokeFileName)
	if err != nil {
		// Keep the scratch directory for inspection
		return nil, &RunError{
			Step:       StepLint,
			Output:     string(lintOut),
			ScratchDir: scratch,
			Err:        err,
		}
	}

	_ = os.RemoveAll(scratch)

	return &Report{
		Tag:        tag,
		Binary:     binary,
		VersionOut: firstLine(string(versionOut)),
	}, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
