package release

import (
	"slices"
	"strings"
	"testing"
)

func mustParse(t *testing.T, data string) *Manifest {
	t.Helper()
	m, err := ParseManifest([]byte(data))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}
	return m
}

const sampleManifest = `{
	"version": 1,
	"versions": {
		"v5.034": {
			"linux-amd64": {"url": "https://releases.vvm.dev/a.tar.gz", "sha256": "abc123"},
			"darwin-amd64": null,
			"darwin-arm64": {"url": "https://releases.vvm.dev/b.tar.gz", "sha256": "def456"}
		},
		"v5.032": {
			"linux-amd64": {"url": "https://releases.vvm.dev/c.tar.gz", "sha256": "ghi789"},
			"darwin-arm64": null
		},
		"v5.024": {
			"darwin-arm64": {"url": "https://releases.vvm.dev/d.tar.gz", "sha256": "jkl012"}
		}
	}
}`

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "valid", data: sampleManifest},
		{name: "empty versions", data: `{"version": 1, "versions": {}}`},
		{name: "malformed JSON", data: `{nope`, wantErr: "failed to parse release manifest"},
		{name: "future schema version", data: `{"version": 2, "versions": {}}`, wantErr: "unsupported manifest version: 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.data))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseManifest() error = %v", err)
				}
				if m.Version != SupportedManifestVersion {
					t.Errorf("Version = %d, want %d", m.Version, SupportedManifestVersion)
				}
				return
			}
			if err == nil {
				t.Fatal("ParseManifest() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetDownload(t *testing.T) {
	m := mustParse(t, sampleManifest)

	if d := m.GetDownload("v5.034", "linux-amd64"); d == nil || d.URL != "https://releases.vvm.dev/a.tar.gz" {
		t.Errorf("GetDownload(v5.034, linux-amd64) = %+v", d)
	}

	// null entries, unlisted platforms and unknown tags all come back nil
	for _, pair := range [][2]string{
		{"v5.034", "darwin-amd64"},
		{"v5.034", "linux-arm64"},
		{"v5.020", "linux-amd64"},
	} {
		if d := m.GetDownload(pair[0], pair[1]); d != nil {
			t.Errorf("GetDownload(%s, %s) = %+v, want nil", pair[0], pair[1], d)
		}
	}
}

func TestCheckAvailability(t *testing.T) {
	m := mustParse(t, sampleManifest)

	tests := []struct {
		tag      string
		platform string
		want     Availability
	}{
		{"v5.034", "linux-amd64", AvailabilityAvailable},
		{"v5.034", "darwin-amd64", AvailabilityUnavailable},
		{"v5.034", "linux-arm64", AvailabilityUnknown},
		{"v5.020", "linux-amd64", AvailabilityUnknown},
	}
	for _, tt := range tests {
		if got := m.CheckAvailability(tt.tag, tt.platform); got != tt.want {
			t.Errorf("CheckAvailability(%s, %s) = %v, want %v", tt.tag, tt.platform, got, tt.want)
		}
	}
}

func TestListVersions(t *testing.T) {
	m := mustParse(t, sampleManifest)

	got := m.ListVersions()
	slices.Sort(got)

	want := []string{"v5.024", "v5.032", "v5.034"}
	if !slices.Equal(got, want) {
		t.Errorf("ListVersions() = %v, want %v", got, want)
	}
}

func TestListAvailableVersions(t *testing.T) {
	m := mustParse(t, sampleManifest)

	tests := []struct {
		platform string
		want     []string
	}{
		// v5.032 marks darwin-arm64 null, so it must not count as available
		{"linux-amd64", []string{"v5.032", "v5.034"}},
		{"darwin-arm64", []string{"v5.024", "v5.034"}},
		{"linux-arm64", nil},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			got := m.ListAvailableVersions(tt.platform)
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ListAvailableVersions(%s) = %v, want %v", tt.platform, got, tt.want)
			}
		})
	}
}
