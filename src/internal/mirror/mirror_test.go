package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recordingRunner captures every command without running anything
type recordingRunner struct {
	calls  []string
	output []byte
	err    error
}

func (r *recordingRunner) run(dir, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return r.output, r.err
}

func TestEnsure_ClonesWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "verilator")

	rec := &recordingRunner{}
	m := New("https://example.com/verilator.git", repoDir)
	m.run = rec.run

	if err := m.Ensure(); err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("Ensure() ran %d commands, want 1: %v", len(rec.calls), rec.calls)
	}
	want := "git clone https://example.com/verilator.git " + repoDir
	if rec.calls[0] != want {
		t.Errorf("Ensure() ran %q, want %q", rec.calls[0], want)
	}
}

func TestEnsure_FetchesWhenPresent(t *testing.T) {
	repoDir := t.TempDir()

	rec := &recordingRunner{}
	m := New("https://example.com/verilator.git", repoDir)
	m.run = rec.run

	if err := m.Ensure(); err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("Ensure() ran %d commands, want 1: %v", len(rec.calls), rec.calls)
	}
	if rec.calls[0] != "git fetch --all --tags" {
		t.Errorf("Ensure() ran %q, want %q", rec.calls[0], "git fetch --all --tags")
	}
}

func TestEnsure_Idempotent(t *testing.T) {
	// Two Ensure calls in a row never clone twice
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "verilator")

	rec := &recordingRunner{}
	m := New("https://example.com/verilator.git", repoDir)
	m.run = rec.run

	if err := m.Ensure(); err != nil {
		t.Fatalf("first Ensure() error: %v", err)
	}

	// Simulate the clone having created the directory
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("Failed to create repo dir: %v", err)
	}

	if err := m.Ensure(); err != nil {
		t.Fatalf("second Ensure() error: %v", err)
	}

	if len(rec.calls) != 2 {
		t.Fatalf("two Ensure() calls ran %d commands, want 2: %v", len(rec.calls), rec.calls)
	}
	if !strings.HasPrefix(rec.calls[0], "git clone") {
		t.Errorf("first call = %q, want a clone", rec.calls[0])
	}
	if rec.calls[1] != "git fetch --all --tags" {
		t.Errorf("second call = %q, want a fetch", rec.calls[1])
	}
}

func TestCheckout(t *testing.T) {
	rec := &recordingRunner{}
	m := New("https://example.com/verilator.git", t.TempDir())
	m.run = rec.run

	if err := m.Checkout("v5.024"); err != nil {
		t.Fatalf("Checkout() error: %v", err)
	}
	if rec.calls[0] != "git checkout v5.024" {
		t.Errorf("Checkout() ran %q", rec.calls[0])
	}
}

func TestCheckout_ReportsGitOutput(t *testing.T) {
	rec := &recordingRunner{
		output: []byte("error: pathspec 'v9.999' did not match any file(s)"),
		err:    fmt.Errorf("exit status 1"),
	}
	m := New("https://example.com/verilator.git", t.TempDir())
	m.run = rec.run

	err := m.Checkout("v9.999")
	if err == nil {
		t.Fatal("Checkout() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "v9.999") {
		t.Errorf("Checkout() error %q should name the tag", err)
	}
	if !strings.Contains(err.Error(), "pathspec") {
		t.Errorf("Checkout() error %q should carry the git output", err)
	}
}

func TestCommit(t *testing.T) {
	rec := &recordingRunner{output: []byte("1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b\n")}
	m := New("https://example.com/verilator.git", t.TempDir())
	m.run = rec.run

	commit, err := m.Commit("v5.024")
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if commit != "1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b" {
		t.Errorf("Commit() = %q, trailing whitespace not trimmed", commit)
	}
	if rec.calls[0] != "git rev-parse v5.024^{commit}" {
		t.Errorf("Commit() ran %q", rec.calls[0])
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "mixed tag list",
			output: "v4.228\nv5.024\nverilator_3_876\n",
			want:   []string{"v4.228", "v5.024", "verilator_3_876"},
		},
		{
			name:   "blank lines dropped",
			output: "\nv5.024\n\n",
			want:   []string{"v5.024"},
		},
		{
			name:   "no tags",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingRunner{output: []byte(tt.output)}
			m := New("https://example.com/verilator.git", t.TempDir())
			m.run = rec.run

			tags, err := m.Tags()
			if err != nil {
				t.Fatalf("Tags() error: %v", err)
			}
			if len(tags) != len(tt.want) {
				t.Fatalf("Tags() = %v, want %v", tags, tt.want)
			}
			for i := range tags {
				if tags[i] != tt.want[i] {
					t.Errorf("Tags()[%d] = %q, want %q", i, tags[i], tt.want[i])
				}
			}
		})
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	m := New("https://example.com/verilator.git", filepath.Join(tmpDir, "missing"))
	if m.Exists() {
		t.Error("Exists() = true for missing directory")
	}

	m = New("https://example.com/verilator.git", tmpDir)
	if !m.Exists() {
		t.Error("Exists() = false for present directory")
	}
}
