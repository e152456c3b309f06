package tools

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"runtool/internal/logx"
	"runtool/internal/paths"
)

// InstallResult reports where an install landed and what it downloaded.
type InstallResult struct {
	Path      string
	SourceURL string
}

// ToolInstaller materializes install specs on disk. Zero-value fields fall
// back to sane defaults; tests override Client, APIBase and Now.
type ToolInstaller struct {
	Dirs    paths.Dirs
	Client  *http.Client
	APIBase string
	Log     *log.Logger
	Now     func() time.Time
}

// NewToolInstaller returns an installer rooted at the given directories.
func NewToolInstaller(d paths.Dirs, logger *log.Logger) *ToolInstaller {
	if logger == nil {
		logger = logx.Discard()
	}
	return &ToolInstaller{Dirs: d, Log: logger}
}

func (t *ToolInstaller) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}

func (t *ToolInstaller) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Install obtains the tool described by entry and returns the installed
// executable path. Same-tool installs across processes are serialized with a
// lock file in the state directory.
func (t *ToolInstaller) Install(ctx context.Context, entry ToolEntry) (InstallResult, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
	}

	if err := t.Dirs.EnsureState(); err != nil {
		return InstallResult{}, err
	}

	unlock, err := t.acquireInstallLock(ctx, entry.Name)
	if err != nil {
		return InstallResult{}, err
	}
	defer unlock()

	spec := entry.Spec
	switch spec.Kind {
	case KindURL:
		rename := spec.Rename
		if rename == "" {
			rename = urlBase(spec.URL)
		}
		return t.executableFromURL(ctx, spec.URL, rename)

	case KindScript:
		tag := spec.Tag
		if tag == "" {
			tag = "master"
		}
		treePath := spec.Path
		if treePath == "" {
			treePath = spec.Project
		}
		rawURL := fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", spec.User, spec.Project, tag, treePath)
		rename := spec.Rename
		if rename == "" {
			rename = path.Base(treePath)
		}
		return t.executableFromURL(ctx, rawURL, rename)

	case KindPackage:
		executable := spec.Binary
		if executable == "" {
			executable = urlBase(spec.URL)
		}
		pkg := spec.Package
		if pkg == "" {
			pkg = urlBase(spec.URL)
		}
		rename := spec.Rename
		if rename == "" {
			rename = executable
		}
		return t.executableFromPackage(ctx, spec.URL, executable, pkg, rename)

	case KindRelease:
		return t.installRelease(ctx, spec)

	case KindRepo:
		return t.installRepo(ctx, spec)

	default:
		return InstallResult{}, fmt.Errorf("unknown spec kind %q", spec.Kind)
	}
}

func (t *ToolInstaller) installRelease(ctx context.Context, spec InstallSpec) (InstallResult, error) {
	binary := spec.Binary
	if binary == "" {
		binary = spec.Project
	}
	rename := spec.Rename
	if rename == "" {
		rename = binary
	}

	// An earlier install of the same release spec lands at a stable path.
	installed := filepath.Join(t.Dirs.Bin, executableName(rename))
	if paths.IsExecutable(installed) {
		return InstallResult{Path: installed}, nil
	}

	resolved, err := t.resolveRelease(ctx, spec.User, spec.Project, spec.Tag)
	if err != nil {
		return InstallResult{}, err
	}
	t.Log.Printf("release %s/%s resolved to %s (%s)", spec.User, spec.Project, resolved.Version, resolved.AssetName)

	if archiveAsset(resolved.AssetName) {
		pkg := spec.User + "_" + spec.Project
		return t.executableFromPackage(ctx, resolved.URL, binary, pkg, rename)
	}
	return t.executableFromURL(ctx, resolved.URL, rename)
}

func (t *ToolInstaller) installRepo(ctx context.Context, spec InstallSpec) (InstallResult, error) {
	tag := spec.Tag
	if tag == "" {
		tag = "master"
	}
	gitURL := fmt.Sprintf("https://github.com/%s/%s", spec.User, spec.Project)
	cloneDir := filepath.Join(t.Dirs.GitProjects, spec.User+"_"+spec.Project)
	binPath := filepath.Join(cloneDir, filepath.FromSlash(spec.Path))

	if exists, err := paths.FileExists(binPath); err != nil {
		return InstallResult{}, err
	} else if !exists {
		if err := os.MkdirAll(t.Dirs.GitProjects, 0o755); err != nil {
			return InstallResult{}, fmt.Errorf("prepare git project dir: %w", err)
		}
		t.Log.Printf("cloning %s (%s) into %s", gitURL, tag, cloneDir)
		cmd := exec.CommandContext(ctx, "git", "clone", "-b", tag, gitURL, cloneDir)
		if output, err := cmd.CombinedOutput(); err != nil {
			return InstallResult{}, fmt.Errorf("git clone %s: %v: %s", gitURL, err, strings.TrimSpace(string(output)))
		}
	}

	if err := makeExecutable(binPath); err != nil {
		return InstallResult{}, err
	}
	return InstallResult{Path: binPath, SourceURL: gitURL}, nil
}

// executableFromURL downloads a single file into the bin directory and marks
// it executable. Already-present files are not downloaded again.
func (t *ToolInstaller) executableFromURL(ctx context.Context, downloadURL, rename string) (InstallResult, error) {
	if err := t.Dirs.EnsureBin(); err != nil {
		return InstallResult{}, err
	}

	dest := filepath.Join(t.Dirs.Bin, rename)
	exists, err := paths.FileExists(dest)
	if err != nil {
		return InstallResult{}, err
	}
	if !exists {
		t.Log.Printf("downloading %s -> %s", downloadURL, dest)
		if err := t.downloadArtifact(ctx, dest, downloadURL); err != nil {
			return InstallResult{}, err
		}
	}

	if err := makeExecutable(dest); err != nil {
		return InstallResult{}, err
	}
	return InstallResult{Path: dest, SourceURL: downloadURL}, nil
}

// executableFromPackage downloads an archive, extracts it under the package
// directory and links the named executable into the bin directory.
func (t *ToolInstaller) executableFromPackage(ctx context.Context, packageURL, executable, packageName, rename string) (InstallResult, error) {
	pkgDir := filepath.Join(t.Dirs.Packages, packageName)
	wanted := executableName(executable)

	found, err := findExecutable(pkgDir, wanted)
	if err != nil {
		return InstallResult{}, err
	}
	if found == "" {
		if err := t.fetchAndExtract(ctx, packageURL, pkgDir); err != nil {
			return InstallResult{}, err
		}
		found, err = findExecutable(pkgDir, wanted)
		if err != nil {
			return InstallResult{}, err
		}
		if found == "" {
			return InstallResult{}, fmt.Errorf("%s not found in %s", wanted, pkgDir)
		}
	}

	if err := makeExecutable(found); err != nil {
		return InstallResult{}, err
	}

	linked, err := t.linkIntoBin(found, rename)
	if err != nil {
		return InstallResult{}, err
	}
	return InstallResult{Path: linked, SourceURL: packageURL}, nil
}

// fetchAndExtract downloads an archive and unpacks it at pkgDir atomically:
// extraction happens in a sibling temp directory that is renamed into place.
func (t *ToolInstaller) fetchAndExtract(ctx context.Context, packageURL, pkgDir string) error {
	downloads := t.Dirs.Downloads()
	if err := os.MkdirAll(downloads, 0o755); err != nil {
		return fmt.Errorf("prepare downloads dir: %w", err)
	}

	archivePath := filepath.Join(downloads, urlBase(packageURL))
	t.Log.Printf("downloading %s -> %s", packageURL, archivePath)
	if err := t.downloadArtifact(ctx, archivePath, packageURL); err != nil {
		return err
	}

	if err := os.MkdirAll(t.Dirs.Packages, 0o755); err != nil {
		return fmt.Errorf("prepare package dir: %w", err)
	}
	extractDir, err := os.MkdirTemp(t.Dirs.Packages, filepath.Base(pkgDir)+"-extract-")
	if err != nil {
		return fmt.Errorf("create extract dir: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(extractDir)
		}
	}()

	if err := extractArchive(ctx, archivePath, extractDir); err != nil {
		return err
	}

	if err := os.RemoveAll(pkgDir); err != nil {
		return fmt.Errorf("replace package dir: %w", err)
	}
	if err := os.Rename(extractDir, pkgDir); err != nil {
		return fmt.Errorf("commit package dir: %w", err)
	}
	committed = true

	_ = os.Remove(archivePath)
	return nil
}

// linkIntoBin exposes an extracted executable under the bin directory. An
// unrelated regular file with the same name is left alone and the original
// path is returned instead.
func (t *ToolInstaller) linkIntoBin(executable, rename string) (string, error) {
	if err := t.Dirs.EnsureBin(); err != nil {
		return "", err
	}

	linkPath := filepath.Join(t.Dirs.Bin, rename)
	info, err := os.Lstat(linkPath)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		t.Log.Printf("%s already exists and is not a symlink; leaving it", linkPath)
		return executable, nil
	case err == nil:
		current, err := filepath.EvalSymlinks(linkPath)
		if err == nil {
			target, terr := filepath.EvalSymlinks(executable)
			if terr == nil && current == target {
				return linkPath, nil
			}
		}
		if err := os.Remove(linkPath); err != nil {
			return "", fmt.Errorf("replace symlink %s: %w", linkPath, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("stat %s: %w", linkPath, err)
	}

	if err := os.Symlink(executable, linkPath); err != nil {
		return "", fmt.Errorf("symlink %s: %w", linkPath, err)
	}
	return linkPath, nil
}

// downloadArtifact streams a URL to dest via a temp file so partial
// downloads never land at the final path.
func (t *ToolInstaller) downloadArtifact(ctx context.Context, dest, downloadURL string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("prepare download destination: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client().Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download %s: unexpected status %s", downloadURL, resp.Status)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "download-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	return nil
}

func (t *ToolInstaller) acquireInstallLock(ctx context.Context, tool string) (func(), error) {
	lockPath := filepath.Join(t.Dirs.State, fmt.Sprintf("%s.lock", tool))
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// findExecutable walks root for a file with the given base name. A missing
// root directory is reported as not found, not as an error.
func findExecutable(root, name string) (string, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	var match string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == name {
			match = path
			return io.EOF
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return match, nil
}

func makeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(path, info.Mode()|0o111); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

func executableName(base string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(base, ".exe") {
		return base + ".exe"
	}
	return base
}

func urlBase(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(parsed.Path)
}

func computeChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for checksum: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
