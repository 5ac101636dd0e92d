// Package builder turns Verilator release tags into usable installs
// under the versions directory
package builder

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/vvm/vvm/src/internal/constants"
	"github.com/vvm/vvm/src/internal/registry"
	"github.com/vvm/vvm/src/internal/ui"
)

// Build stages, in pipeline order
const (
	StageCheckout  = "checkout"
	StageConfigure = "configure"
	StageCompile   = "compile"
	StageInstall   = "install"
)

// StageError reports which pipeline stage failed for which tag.
// The wrapped error carries the captured subprocess output.
type StageError struct {
	Stage string
	Tag   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed for %s: %v", e.Stage, e.Tag, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Source is the repository the builder checks tags out of
type Source interface {
	Checkout(tag string) error
	Commit(ref string) (string, error)
}

// runner executes a command in dir and returns its combined output
type runner func(dir, name string, args ...string) ([]byte, error)

func runCommand(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Result describes the outcome of a build
type Result struct {
	Tag              string
	Dir              string
	AlreadyInstalled bool
}

// Builder drives the autoconf/configure/make pipeline inside the
// mirror working tree. Builds are strictly sequential; the working
// tree is shared state and two builds in it would trample each other.
type Builder struct {
	VersionsDir string
	WorkDir     string
	Source      Source
	Jobs        int // 0 means one job per CPU

	run runner
}

// New creates a builder that compiles in workDir and installs under versionsDir
func New(versionsDir, workDir string, source Source) *Builder {
	return &Builder{
		VersionsDir: versionsDir,
		WorkDir:     workDir,
		Source:      source,
		run:         runCommand,
	}
}

func (b *Builder) jobs() int {
	if b.Jobs > 0 {
		return b.Jobs
	}
	return runtime.NumCPU()
}

// Build produces the install for a tag. A tag that is already
// installed is a no-op success, not an error.
func (b *Builder) Build(tag string) (*Result, error) {
	installDir := filepath.Join(b.VersionsDir, constants.InstallDirPrefix+tag)
	result := &Result{Tag: tag, Dir: installDir}

	if registry.IsInstalled(b.VersionsDir, tag) {
		result.AlreadyInstalled = true
		return result, nil
	}

	if err := os.MkdirAll(b.VersionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create versions directory: %w", err)
	}

	spinner := ui.NewSpinner(fmt.Sprintf("Checking out %s...", tag))
	spinner.Start()
	if err := b.Source.Checkout(tag); err != nil {
		spinner.Error("Checkout failed")
		return nil, &StageError{Stage: StageCheckout, Tag: tag, Err: err}
	}
	spinner.Success(fmt.Sprintf("Checked out %s", tag))

	// Best effort: scrub leftovers from a previous build of another tag
	if output, err := b.run(b.WorkDir, "make", "distclean"); err != nil {
		ui.Debug("make distclean: %v\n%s", err, string(output))
	}

	spinner = ui.NewSpinner("Configuring...")
	spinner.Start()
	if output, err := b.run(b.WorkDir, "autoconf"); err != nil {
		spinner.Error("Configure failed")
		return nil, &StageError{Stage: StageConfigure, Tag: tag,
			Err: fmt.Errorf("autoconf: %w\n%s", err, string(output))}
	}
	if output, err := b.run(b.WorkDir, "./configure", "--prefix="+installDir); err != nil {
		spinner.Error("Configure failed")
		return nil, &StageError{Stage: StageConfigure, Tag: tag,
			Err: fmt.Errorf("configure: %w\n%s", err, string(output))}
	}
	spinner.Success("Configured")

	spinner = ui.NewSpinner(fmt.Sprintf("Compiling with %d jobs (this takes a while)...", b.jobs()))
	spinner.Start()
	if output, err := b.run(b.WorkDir, "make", "-j"+strconv.Itoa(b.jobs())); err != nil {
		spinner.Error("Compile failed")
		return nil, &StageError{Stage: StageCompile, Tag: tag,
			Err: fmt.Errorf("make: %w\n%s", err, string(output))}
	}
	spinner.Success("Compiled")

	spinner = ui.NewSpinner("Installing...")
	spinner.Start()
	if output, err := b.run(b.WorkDir, "make", "install"); err != nil {
		spinner.Error("Install failed")
		return nil, &StageError{Stage: StageInstall, Tag: tag,
			Err: fmt.Errorf("make install: %w\n%s", err, string(output))}
	}
	spinner.Success("Installed")

	b.writeProvenance(tag, installDir)

	return result, nil
}

// writeProvenance records build metadata. The install is usable
// without it, failures only warn.
func (b *Builder) writeProvenance(tag, installDir string) {
	commit, err := b.Source.Commit(tag)
	if err != nil {
		ui.Warning("Could not resolve commit for %s: %v", tag, err)
	}

	prov := &registry.Provenance{
		Tag:    tag,
		Date:   time.Now().UTC().Format(time.RFC3339),
		Commit: commit,
	}
	if err := registry.WriteProvenance(installDir, prov); err != nil {
		ui.Warning("Could not write build metadata: %v", err)
	}
}
