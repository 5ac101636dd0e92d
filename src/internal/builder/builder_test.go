package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvm/vvm/src/internal/registry"
)

type fakeSource struct {
	checkoutErr error
	commit      string
	commitErr   error
	checkouts   []string
}

func (f *fakeSource) Checkout(tag string) error {
	f.checkouts = append(f.checkouts, tag)
	return f.checkoutErr
}

func (f *fakeSource) Commit(ref string) (string, error) {
	return f.commit, f.commitErr
}

// scriptedRunner records commands and fails the first one matching failOn
type scriptedRunner struct {
	calls  []string
	failOn string
}

func (r *scriptedRunner) run(dir, name string, args ...string) ([]byte, error) {
	call := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, call)
	if r.failOn != "" && strings.HasPrefix(call, r.failOn) {
		return []byte("simulated build output"), fmt.Errorf("exit status 2")
	}
	return nil, nil
}

func newTestBuilder(t *testing.T, src *fakeSource, run *scriptedRunner) *Builder {
	t.Helper()
	b := New(filepath.Join(t.TempDir(), "versions"), t.TempDir(), src)
	b.Jobs = 4
	b.run = run.run
	return b
}

func makeInstalled(t *testing.T, versionsDir, tag string) {
	t.Helper()
	dir := filepath.Join(versionsDir, "verilator_"+tag)
	if err := os.MkdirAll(filepath.Join(dir, "bin"), 0755); err != nil {
		t.Fatalf("Failed to create install dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bin", "verilator"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to create binary: %v", err)
	}
}

func TestBuild_StageOrder(t *testing.T) {
	src := &fakeSource{commit: "1a2b3c4d"}
	run := &scriptedRunner{}
	b := newTestBuilder(t, src, run)

	result, err := b.Build("v5.024")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if result.AlreadyInstalled {
		t.Error("Build() reported already installed for a fresh build")
	}

	if len(src.checkouts) != 1 || src.checkouts[0] != "v5.024" {
		t.Errorf("Build() checkouts = %v, want [v5.024]", src.checkouts)
	}

	want := []string{
		"make distclean",
		"autoconf",
		"./configure --prefix=" + result.Dir,
		"make -j4",
		"make install",
	}
	if len(run.calls) != len(want) {
		t.Fatalf("Build() ran %v, want %v", run.calls, want)
	}
	for i := range want {
		if run.calls[i] != want[i] {
			t.Errorf("Build() step %d = %q, want %q", i, run.calls[i], want[i])
		}
	}
}

func TestBuild_AlreadyInstalledIsNoOp(t *testing.T) {
	src := &fakeSource{}
	run := &scriptedRunner{}
	b := newTestBuilder(t, src, run)
	makeInstalled(t, b.VersionsDir, "v5.024")

	result, err := b.Build("v5.024")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !result.AlreadyInstalled {
		t.Error("Build() should report already installed")
	}
	if len(src.checkouts) != 0 {
		t.Errorf("Build() checked out %v for an installed tag", src.checkouts)
	}
	if len(run.calls) != 0 {
		t.Errorf("Build() ran %v for an installed tag", run.calls)
	}
}

func TestBuild_CheckoutFailure(t *testing.T) {
	src := &fakeSource{checkoutErr: fmt.Errorf("pathspec did not match")}
	run := &scriptedRunner{}
	b := newTestBuilder(t, src, run)

	_, err := b.Build("v9.999")
	if err == nil {
		t.Fatal("Build() expected error, got nil")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("Build() error is %T, want *StageError", err)
	}
	if stageErr.Stage != StageCheckout {
		t.Errorf("StageError.Stage = %q, want %q", stageErr.Stage, StageCheckout)
	}
	if stageErr.Tag != "v9.999" {
		t.Errorf("StageError.Tag = %q, want %q", stageErr.Tag, "v9.999")
	}
	if len(run.calls) != 0 {
		t.Errorf("Build() ran %v after checkout failure", run.calls)
	}
}

func TestBuild_AbortsOnStageFailure(t *testing.T) {
	tests := []struct {
		name      string
		failOn    string
		wantStage string
		// Commands that must never run after the failure
		forbidden []string
	}{
		{
			name:      "autoconf failure",
			failOn:    "autoconf",
			wantStage: StageConfigure,
			forbidden: []string{"./configure", "make -j4", "make install"},
		},
		{
			name:      "configure failure",
			failOn:    "./configure",
			wantStage: StageConfigure,
			forbidden: []string{"make -j4", "make install"},
		},
		{
			name:      "compile failure",
			failOn:    "make -j4",
			wantStage: StageCompile,
			forbidden: []string{"make install"},
		},
		{
			name:      "install failure",
			failOn:    "make install",
			wantStage: StageInstall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			run := &scriptedRunner{failOn: tt.failOn}
			b := newTestBuilder(t, src, run)

			_, err := b.Build("v5.024")
			if err == nil {
				t.Fatal("Build() expected error, got nil")
			}

			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("Build() error is %T, want *StageError", err)
			}
			if stageErr.Stage != tt.wantStage {
				t.Errorf("StageError.Stage = %q, want %q", stageErr.Stage, tt.wantStage)
			}
			if !strings.Contains(err.Error(), "simulated build output") {
				t.Errorf("Build() error %q should carry the captured output", err)
			}

			for _, forbidden := range tt.forbidden {
				for _, call := range run.calls {
					if strings.HasPrefix(call, forbidden) {
						t.Errorf("Build() ran %q after %s failed", call, tt.failOn)
					}
				}
			}
		})
	}
}

func TestBuild_DistcleanFailureIsIgnored(t *testing.T) {
	src := &fakeSource{}
	run := &scriptedRunner{failOn: "make distclean"}
	b := newTestBuilder(t, src, run)

	if _, err := b.Build("v5.024"); err != nil {
		t.Fatalf("Build() error: %v, distclean failures must not abort", err)
	}

	// Pipeline continued past the failed distclean
	last := run.calls[len(run.calls)-1]
	if last != "make install" {
		t.Errorf("Build() last command = %q, want %q", last, "make install")
	}
}

func TestBuild_WritesProvenance(t *testing.T) {
	src := &fakeSource{commit: "1a2b3c4d5e6f"}
	run := &scriptedRunner{}
	b := newTestBuilder(t, src, run)

	installDir := filepath.Join(b.VersionsDir, "verilator_v5.024")
	// In a real build make install creates the prefix
	if err := os.MkdirAll(installDir, 0755); err != nil {
		t.Fatalf("Failed to create install dir: %v", err)
	}

	if _, err := b.Build("v5.024"); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	prov, err := registry.ReadProvenance(installDir)
	if err != nil {
		t.Fatalf("ReadProvenance() error: %v", err)
	}
	if prov.Tag != "v5.024" {
		t.Errorf("Provenance.Tag = %q, want %q", prov.Tag, "v5.024")
	}
	if prov.Commit != "1a2b3c4d5e6f" {
		t.Errorf("Provenance.Commit = %q, want %q", prov.Commit, "1a2b3c4d5e6f")
	}
	if prov.Date == "" {
		t.Error("Provenance.Date is empty")
	}
}

func TestBuild_ProvenanceFailureDoesNotFailBuild(t *testing.T) {
	src := &fakeSource{commitErr: fmt.Errorf("unknown revision")}
	run := &scriptedRunner{}
	b := newTestBuilder(t, src, run)

	// Install dir never created, so the provenance write fails too
	if _, err := b.Build("v5.024"); err != nil {
		t.Fatalf("Build() error: %v, provenance problems must not fail the build", err)
	}
}
