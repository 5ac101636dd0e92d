package release

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// countingSource counts Load calls so tests can tell cache hits from
// cache misses
type countingSource struct {
	manifest *Manifest
	err      error
	calls    int
}

func (s *countingSource) Load() (*Manifest, error) {
	s.calls++
	return s.manifest, s.err
}

func emptyManifest() *Manifest {
	return &Manifest{Version: 1, Versions: map[string]map[string]*Download{}}
}

func TestCachedSourceReusesCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "releases.json")
	upstream := &countingSource{manifest: emptyManifest()}
	source := NewCachedSource(upstream, cachePath, time.Hour)

	// Cold cache pulls from upstream and writes the cache file
	if _, err := source.Load(); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if upstream.calls != 1 {
		t.Fatalf("upstream calls = %d after first Load, want 1", upstream.calls)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}

	// Warm cache answers without touching upstream
	if _, err := source.Load(); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d after cached Load, want 1", upstream.calls)
	}

	// ForceRefresh always goes back to upstream
	if _, err := source.ForceRefresh(); err != nil {
		t.Fatalf("ForceRefresh: %v", err)
	}
	if upstream.calls != 2 {
		t.Errorf("upstream calls = %d after ForceRefresh, want 2", upstream.calls)
	}
}

func TestCachedSourceExpiration(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "releases.json")
	upstream := &countingSource{manifest: emptyManifest()}
	source := NewCachedSource(upstream, cachePath, time.Millisecond)

	if _, err := source.Load(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := source.Load(); err != nil {
		t.Fatal(err)
	}

	if upstream.calls != 2 {
		t.Errorf("upstream calls = %d, want 2 after the entry expired", upstream.calls)
	}
}

func TestCachedSourceIgnoresCorruptCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "releases.json")
	if err := os.WriteFile(cachePath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	upstream := &countingSource{manifest: emptyManifest()}
	source := NewCachedSource(upstream, cachePath, time.Hour)

	if _, err := source.Load(); err != nil {
		t.Fatalf("Load with corrupt cache: %v", err)
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1 (corrupt cache should be refetched)", upstream.calls)
	}
}

func TestCachedSourceUpstreamFailure(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "releases.json")
	upstream := &countingSource{err: &ErrManifestNotFound{Origin: "https://example.com/verilator.json"}}
	source := NewCachedSource(upstream, cachePath, time.Hour)

	_, err := source.Load()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsManifestNotFound(err) {
		t.Errorf("expected ErrManifestNotFound, got %T: %v", err, err)
	}

	// Failed loads must not leave a cache file behind
	if _, err := os.Stat(cachePath); !os.IsNotExist(err) {
		t.Error("cache file should not exist after failed load")
	}
}
