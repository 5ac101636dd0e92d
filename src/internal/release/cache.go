package release

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL is how long a cached manifest stays valid.
const DefaultCacheTTL = 24 * time.Hour

// CachedSource keeps the manifest from a slower Source on disk so
// repeated commands skip the network.
type CachedSource struct {
	source    Source
	cachePath string
	ttl       time.Duration
}

// cacheEntry is the on-disk cache format.
type cacheEntry struct {
	CachedAt time.Time `json:"cached_at"`
	Manifest *Manifest `json:"manifest"`
}

// NewCachedSource wraps source with a disk cache at cachePath.
func NewCachedSource(source Source, cachePath string, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, cachePath: cachePath, ttl: ttl}
}

// Load returns the cached manifest while it is fresh, otherwise asks
// the underlying source and refills the cache.
func (s *CachedSource) Load() (*Manifest, error) {
	if m, err := s.fresh(); err == nil {
		return m, nil
	}
	return s.refill()
}

// ForceRefresh drops the cache and asks the underlying source.
func (s *CachedSource) ForceRefresh() (*Manifest, error) {
	_ = os.Remove(s.cachePath)
	return s.refill()
}

// fresh returns the cached manifest if it exists and has not expired.
func (s *CachedSource) fresh() (*Manifest, error) {
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	if time.Since(entry.CachedAt) > s.ttl {
		// An expired entry reads the same as a missing one
		return nil, os.ErrNotExist
	}

	return entry.Manifest, nil
}

// refill fetches from the underlying source and rewrites the cache.
// Cache writes are best effort.
func (s *CachedSource) refill() (*Manifest, error) {
	m, err := s.source.Load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(cacheEntry{CachedAt: time.Now(), Manifest: m}); err == nil {
		if err := os.MkdirAll(filepath.Dir(s.cachePath), 0755); err == nil {
			_ = os.WriteFile(s.cachePath, data, 0644)
		}
	}

	return m, nil
}
