package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"runtool/internal/config"
)

// Dirs captures the canonical on-disk locations runtool works with.
type Dirs struct {
	Bin         string
	Packages    string
	GitProjects string
	State       string
}

// FromConfig builds the directory bundle from loaded configuration.
func FromConfig(cfg config.Config) Dirs {
	return Dirs{
		Bin:         cfg.BinDir,
		Packages:    cfg.PackageDir,
		GitProjects: cfg.GitProjectDir,
		State:       cfg.StateDir,
	}
}

// Downloads returns the scratch directory for in-flight downloads.
func (d Dirs) Downloads() string {
	return filepath.Join(d.State, "downloads")
}

// Logs returns the directory for per-invocation log files.
func (d Dirs) Logs() string {
	return filepath.Join(d.State, "logs")
}

// ManifestFile returns the path of the resolved-tool manifest.
func (d Dirs) ManifestFile() string {
	return filepath.Join(d.State, "manifest.json")
}

// ReleaseCacheFile returns the path of the latest-release lookup cache.
func (d Dirs) ReleaseCacheFile() string {
	return filepath.Join(d.State, "release_cache.json")
}

// EnsureState creates the state directory hierarchy.
func (d Dirs) EnsureState() error {
	for _, dir := range []string{d.State, d.Downloads(), d.Logs()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// EnsureBin creates the bin directory.
func (d Dirs) EnsureBin() error {
	if err := os.MkdirAll(d.Bin, 0o755); err != nil {
		return fmt.Errorf("create bin directory: %w", err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// IsExecutable reports whether a path is a regular file with an execute bit.
// On Windows any regular file qualifies.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
