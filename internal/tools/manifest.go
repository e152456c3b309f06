package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"runtool/internal/paths"
)

// ManifestStore reads and writes the resolved-tool manifest. All writes are
// atomic (temp file + rename) so a crashed install never leaves a torn file.
type ManifestStore struct {
	path string
}

// NewManifestStore returns a store rooted at the state directory.
func NewManifestStore(d paths.Dirs) *ManifestStore {
	return &ManifestStore{path: d.ManifestFile()}
}

// Load reads the manifest, returning an empty one when the file is absent.
func (s *ManifestStore) Load() (Manifest, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{Entries: map[string]ManifestEntry{}}, nil
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(contents, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if manifest.Entries == nil {
		manifest.Entries = map[string]ManifestEntry{}
	}
	return manifest, nil
}

// Save writes the manifest atomically.
func (s *ManifestStore) Save(m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prepare manifest directory: %w", err)
	}

	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "manifest-*.json")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write manifest temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close manifest temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// Get returns the entry for tool when it is still valid: the recorded path
// must exist and be executable. Stale entries are reported as absent.
func (s *ManifestStore) Get(tool string) (ManifestEntry, bool, error) {
	manifest, err := s.Load()
	if err != nil {
		return ManifestEntry{}, false, err
	}
	entry, ok := manifest.Entries[tool]
	if !ok {
		return ManifestEntry{}, false, nil
	}
	if !paths.IsExecutable(entry.Path) {
		return ManifestEntry{}, false, nil
	}
	return entry, true, nil
}

// Put records an entry, replacing any previous one for the same tool.
func (s *ManifestStore) Put(entry ManifestEntry) error {
	manifest, err := s.Load()
	if err != nil {
		return err
	}
	if manifest.Entries == nil {
		manifest.Entries = map[string]ManifestEntry{}
	}
	manifest.Entries[entry.Tool] = entry
	return s.Save(manifest)
}

// Drop removes the entry for tool if present.
func (s *ManifestStore) Drop(tool string) error {
	manifest, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := manifest.Entries[tool]; !ok {
		return nil
	}
	delete(manifest.Entries, tool)
	return s.Save(manifest)
}
