package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvm/vvm/src/internal/constants"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.RepoURL != constants.DefaultRepoURL {
		t.Errorf("DefaultSettings().RepoURL = %q, want %q", settings.RepoURL, constants.DefaultRepoURL)
	}
	if settings.RCFile == "" {
		t.Error("DefaultSettings().RCFile is empty")
	}
	if !strings.HasSuffix(settings.RCFile, ".bashrc") {
		t.Errorf("DefaultSettings().RCFile = %q, want a .bashrc path", settings.RCFile)
	}
	if settings.Jobs != 0 {
		t.Errorf("DefaultSettings().Jobs = %d, want 0", settings.Jobs)
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	withRoot(t, t.TempDir())

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() with no file error: %v", err)
	}

	// Missing file falls back to defaults
	if settings.RepoURL != constants.DefaultRepoURL {
		t.Errorf("LoadSettings().RepoURL = %q, want default %q", settings.RepoURL, constants.DefaultRepoURL)
	}
	if settings.RCFile == "" {
		t.Error("LoadSettings().RCFile is empty")
	}
}

func TestLoadSettings_ReadsFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantRepoURL string
		wantRCFile  string
		wantJobs    int
		expectError bool
	}{
		{
			name:        "all fields set",
			content:     `{"repo_url": "https://example.com/verilator.git", "rc_file": "/home/u/.bashrc", "jobs": 4}`,
			wantRepoURL: "https://example.com/verilator.git",
			wantRCFile:  "/home/u/.bashrc",
			wantJobs:    4,
		},
		{
			name:        "empty fields fall back to defaults",
			content:     `{"repo_url": "", "rc_file": ""}`,
			wantRepoURL: constants.DefaultRepoURL,
			wantRCFile:  DefaultRCFile(),
		},
		{
			name:        "invalid JSON",
			content:     `{invalid json}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRoot(t, t.TempDir())

			settingsPath := SettingsPath()
			if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
				t.Fatalf("Failed to create config dir: %v", err)
			}
			if err := os.WriteFile(settingsPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write settings file: %v", err)
			}

			settings, err := LoadSettings()

			if tt.expectError {
				if err == nil {
					t.Error("LoadSettings() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadSettings() unexpected error: %v", err)
			}
			if settings.RepoURL != tt.wantRepoURL {
				t.Errorf("RepoURL = %q, want %q", settings.RepoURL, tt.wantRepoURL)
			}
			if settings.RCFile != tt.wantRCFile {
				t.Errorf("RCFile = %q, want %q", settings.RCFile, tt.wantRCFile)
			}
			if settings.Jobs != tt.wantJobs {
				t.Errorf("Jobs = %d, want %d", settings.Jobs, tt.wantJobs)
			}
		})
	}
}

func TestSaveSettings_CreatesFile(t *testing.T) {
	withRoot(t, t.TempDir())

	settings := &Settings{
		RepoURL: "https://example.com/fork.git",
		RCFile:  "/home/u/.bashrc",
		Jobs:    8,
	}

	if err := SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	// The file on disk should parse back to what was saved
	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		t.Fatalf("Failed to read settings file: %v", err)
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Failed to parse settings: %v", err)
	}

	if loaded.RepoURL != settings.RepoURL {
		t.Errorf("Saved RepoURL = %q, want %q", loaded.RepoURL, settings.RepoURL)
	}
	if loaded.Jobs != settings.Jobs {
		t.Errorf("Saved Jobs = %d, want %d", loaded.Jobs, settings.Jobs)
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	withRoot(t, t.TempDir())

	// Save, update, save again
	if err := SaveSettings(&Settings{RepoURL: "https://example.com/a.git", RCFile: "/rc"}); err != nil {
		t.Fatalf("SaveSettings() initial error: %v", err)
	}
	if err := SaveSettings(&Settings{RepoURL: "https://example.com/b.git", RCFile: "/rc"}); err != nil {
		t.Fatalf("SaveSettings() update error: %v", err)
	}

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}

	if settings.RepoURL != "https://example.com/b.git" {
		t.Errorf("LoadSettings().RepoURL = %q, want %q", settings.RepoURL, "https://example.com/b.git")
	}
}
