// Generates the release manifest from the published prebuilt archives.
// Run with: go run ./scripts/generate-manifests [output-dir]
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	outputDir := "src/internal/release/data"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := generateVerilatorManifest(outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating Verilator manifest: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done!")
}

type manifest struct {
	Version   int                                  `json:"version"`
	Generated string                               `json:"generated"`
	Versions  map[string]map[string]*manifestEntry `json:"versions"`
}

type manifestEntry struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256"`
}

type release struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	// Digest has the form "sha256:abc123..."
	Digest string `json:"digest"`
}

func writeManifest(m *manifest, outputDir, filename string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// fetchReleases walks every page of a GitHub releases listing
func fetchReleases(listURL string) ([]release, error) {
	var all []release

	next := listURL + "?per_page=100"
	for next != "" {
		page, link, err := fetchReleasePage(next)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		next = nextPageURL(link)
	}
	return all, nil
}

func fetchReleasePage(url string) ([]release, string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "vvm-manifest-generator")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var page []release
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", err
	}
	return page, resp.Header.Get("Link"), nil
}

// nextPageURL pulls the rel="next" target out of a Link header,
// which looks like: <url>; rel="next", <url>; rel="last"
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		target, rel, ok := strings.Cut(strings.TrimSpace(part), ";")
		if !ok || strings.TrimSpace(rel) != `rel="next"` {
			continue
		}
		return strings.Trim(strings.TrimSpace(target), "<>")
	}
	return ""
}
