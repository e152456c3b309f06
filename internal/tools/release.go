package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"
)

const userAgent = "runtool/1.0"

type githubReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type githubRelease struct {
	TagName string               `json:"tag_name"`
	Assets  []githubReleaseAsset `json:"assets"`
}

// resolvedRelease is the outcome of a release lookup: the concrete asset to
// download for the current platform.
type resolvedRelease struct {
	Version   string
	AssetName string
	URL       string
}

// resolveRelease queries the releases API for user/project and selects the
// best asset for the running platform. An empty tag means latest; latest
// results are cached on disk with a TTL.
func (t *ToolInstaller) resolveRelease(ctx context.Context, user, project, tag string) (resolvedRelease, error) {
	cacheKey := user + "/" + project
	if tag == "" {
		if cached, ok := t.cachedLatestRelease(cacheKey); ok {
			return cached, nil
		}
	}

	var lastErr error
	for _, endpoint := range t.releaseEndpoints(user, project, tag) {
		release, err := t.fetchRelease(ctx, endpoint)
		if err != nil {
			lastErr = err
			continue
		}

		names := make([]string, 0, len(release.Assets))
		byName := make(map[string]string, len(release.Assets))
		for _, asset := range release.Assets {
			names = append(names, asset.Name)
			byName[asset.Name] = asset.BrowserDownloadURL
		}

		best, ok := BestAsset(names, runtime.GOOS, runtime.GOARCH)
		if !ok {
			lastErr = fmt.Errorf("no %s/%s release asset for %s/%s", user, project, runtime.GOOS, runtime.GOARCH)
			continue
		}

		resolved := resolvedRelease{
			Version:   strings.TrimPrefix(release.TagName, "v"),
			AssetName: best,
			URL:       byName[best],
		}
		if resolved.Version == "" {
			resolved.Version = release.TagName
		}
		if tag == "" {
			t.cacheLatestRelease(cacheKey, resolved)
		}
		return resolved, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("release metadata unavailable for %s/%s", user, project)
	}
	return resolvedRelease{}, lastErr
}

func (t *ToolInstaller) releaseEndpoints(user, project, tag string) []string {
	base := fmt.Sprintf("%s/repos/%s/%s/releases", t.apiBase(), user, project)
	if tag == "" || tag == "latest" {
		return []string{base + "/latest"}
	}

	endpoints := []string{fmt.Sprintf("%s/tags/%s", base, url.PathEscape(tag))}
	if !strings.HasPrefix(tag, "v") {
		endpoints = append(endpoints, fmt.Sprintf("%s/tags/%s", base, url.PathEscape("v"+tag)))
	}
	return endpoints
}

func (t *ToolInstaller) fetchRelease(ctx context.Context, endpoint string) (githubRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return githubRelease{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client().Do(req)
	if err != nil {
		return githubRelease{}, fmt.Errorf("release query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return githubRelease{}, fmt.Errorf("release not found at %s", endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return githubRelease{}, fmt.Errorf("release query failed: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return githubRelease{}, fmt.Errorf("decode release: %w", err)
	}
	return release, nil
}

func (t *ToolInstaller) apiBase() string {
	if t.APIBase != "" {
		return strings.TrimSuffix(t.APIBase, "/")
	}
	return "https://api.github.com"
}
