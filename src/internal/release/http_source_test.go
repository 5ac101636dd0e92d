package release

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// serveManifest runs a test server that answers /verilator.json with
// the given status and body
func serveManifest(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/verilator.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestHTTPSourceLoad(t *testing.T) {
	manifestJSON := `{
		"version": 1,
		"versions": {
			"v5.034": {
				"linux-amd64": {"url": "https://example.com/verilator.tar.gz", "sha256": "abc123"}
			}
		}
	}`

	tests := []struct {
		name         string
		status       int
		body         string
		wantErr      bool
		wantNotFound bool
	}{
		{
			name:   "manifest served",
			status: http.StatusOK,
			body:   manifestJSON,
		},
		{
			name:         "manifest missing",
			status:       http.StatusNotFound,
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    "invalid json",
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serveManifest(t, tt.status, tt.body)

			m, err := NewHTTPSource(server.URL).Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if got := IsManifestNotFound(err); got != tt.wantNotFound {
					t.Errorf("IsManifestNotFound(err) = %v, want %v (err: %v)", got, tt.wantNotFound, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			d := m.GetDownload("v5.034", "linux-amd64")
			if d == nil {
				t.Fatal("expected download info")
			}
			if d.URL != "https://example.com/verilator.tar.gz" {
				t.Errorf("URL = %q, want %q", d.URL, "https://example.com/verilator.tar.gz")
			}
		})
	}
}

func TestHTTPSourceWithClient(t *testing.T) {
	server := serveManifest(t, http.StatusOK, `{"version": 1, "versions": {}}`)

	m, err := NewHTTPSourceWithClient(server.URL, &http.Client{}).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected manifest")
	}
}

func TestHTTPSourceUnreachable(t *testing.T) {
	// Nothing listens on port 1
	if _, err := NewHTTPSource("http://localhost:1").Load(); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
