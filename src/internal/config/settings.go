package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvm/vvm/src/internal/constants"
)

// Settings represents the persisted user settings in settings.json
// Format: {"repo_url": "...", "rc_file": "...", "jobs": 8}
type Settings struct {
	RepoURL string `json:"repo_url"`
	RCFile  string `json:"rc_file"`
	Jobs    int    `json:"jobs,omitempty"` // 0 means one job per CPU
}

// DefaultSettings returns the settings used when no settings file exists
func DefaultSettings() *Settings {
	return &Settings{
		RepoURL: constants.DefaultRepoURL,
		RCFile:  DefaultRCFile(),
	}
}

// DefaultRCFile returns the shell startup file edited by the switcher
func DefaultRCFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bashrc"
	}
	return filepath.Join(home, ".bashrc")
}

// LoadSettings reads settings.json, falling back to defaults for a
// missing file or missing fields
func LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	settingsPath := SettingsPath()
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return settings, nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if settings.RepoURL == "" {
		settings.RepoURL = constants.DefaultRepoURL
	}
	if settings.RCFile == "" {
		settings.RCFile = DefaultRCFile()
	}

	return settings, nil
}

// SaveSettings writes settings to settings.json
func SaveSettings(settings *Settings) error {
	settingsPath := SettingsPath()

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(settingsPath, data, 0644)
}
