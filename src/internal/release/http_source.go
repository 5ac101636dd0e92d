package release

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRemoteURL is where the hosted release manifest lives.
const DefaultRemoteURL = "https://manifests.vvm.dev"

// DefaultHTTPTimeout bounds a single manifest fetch.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPSource loads the release manifest over HTTP.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a Source that fetches the manifest from baseURL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return NewHTTPSourceWithClient(baseURL, &http.Client{Timeout: DefaultHTTPTimeout})
}

// NewHTTPSourceWithClient uses the supplied client, letting tests and
// callers with special transport needs control timeouts themselves.
func NewHTTPSourceWithClient(baseURL string, client *http.Client) *HTTPSource {
	return &HTTPSource{baseURL: baseURL, client: client}
}

// Load fetches and parses the hosted manifest.
func (s *HTTPSource) Load() (*Manifest, error) {
	url := s.baseURL + "/verilator.json"

	resp, err := s.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &ErrManifestNotFound{Origin: url}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("manifest server returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading manifest body: %w", err)
	}

	return ParseManifest(data)
}
