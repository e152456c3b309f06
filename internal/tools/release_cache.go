package tools

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const releaseCacheTTL = 1 * time.Hour

type releaseCacheEntry struct {
	Repo      string    `json:"repo"`
	Version   string    `json:"version"`
	AssetName string    `json:"asset_name"`
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
}

type releaseCache struct {
	Entries map[string]releaseCacheEntry `json:"entries"`
}

func (t *ToolInstaller) loadReleaseCache() releaseCache {
	data, err := os.ReadFile(t.Dirs.ReleaseCacheFile())
	if err != nil {
		return releaseCache{Entries: map[string]releaseCacheEntry{}}
	}
	var rc releaseCache
	if err := json.Unmarshal(data, &rc); err != nil {
		return releaseCache{Entries: map[string]releaseCacheEntry{}}
	}
	if rc.Entries == nil {
		rc.Entries = map[string]releaseCacheEntry{}
	}
	return rc
}

func (t *ToolInstaller) saveReleaseCache(rc releaseCache) {
	path := t.Dirs.ReleaseCacheFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	data, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

// cachedLatestRelease returns a cached lookup if present and not expired.
func (t *ToolInstaller) cachedLatestRelease(repo string) (resolvedRelease, bool) {
	rc := t.loadReleaseCache()
	entry, ok := rc.Entries[repo]
	if !ok {
		return resolvedRelease{}, false
	}
	if t.now().Sub(entry.FetchedAt) > releaseCacheTTL {
		return resolvedRelease{}, false
	}
	return resolvedRelease{
		Version:   entry.Version,
		AssetName: entry.AssetName,
		URL:       entry.URL,
	}, true
}

// cacheLatestRelease stores a lookup result.
func (t *ToolInstaller) cacheLatestRelease(repo string, resolved resolvedRelease) {
	rc := t.loadReleaseCache()
	rc.Entries[repo] = releaseCacheEntry{
		Repo:      repo,
		Version:   resolved.Version,
		AssetName: resolved.AssetName,
		URL:       resolved.URL,
		FetchedAt: t.now(),
	}
	t.saveReleaseCache(rc)
}
