package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"runtool/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg := config.Config{
		BinDir:        "/opt/bin",
		PackageDir:    "/opt/packages",
		GitProjectDir: "/opt/git_projects",
		StateDir:      "/state",
	}
	d := FromConfig(cfg)
	if d.Bin != "/opt/bin" || d.Packages != "/opt/packages" || d.GitProjects != "/opt/git_projects" || d.State != "/state" {
		t.Fatalf("unexpected dirs %+v", d)
	}
	if d.ManifestFile() != filepath.Join("/state", "manifest.json") {
		t.Fatalf("unexpected manifest file %q", d.ManifestFile())
	}
	if d.ReleaseCacheFile() != filepath.Join("/state", "release_cache.json") {
		t.Fatalf("unexpected release cache file %q", d.ReleaseCacheFile())
	}
	if d.Downloads() != filepath.Join("/state", "downloads") {
		t.Fatalf("unexpected downloads dir %q", d.Downloads())
	}
	if d.Logs() != filepath.Join("/state", "logs") {
		t.Fatalf("unexpected logs dir %q", d.Logs())
	}
}

func TestEnsureState(t *testing.T) {
	root := t.TempDir()
	d := Dirs{
		Bin:   filepath.Join(root, "bin"),
		State: filepath.Join(root, "state"),
	}
	if err := d.EnsureState(); err != nil {
		t.Fatalf("ensure state: %v", err)
	}
	for _, dir := range []string{d.State, d.Downloads(), d.Logs()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected directory at %s", dir)
		}
	}

	if err := d.EnsureBin(); err != nil {
		t.Fatalf("ensure bin: %v", err)
	}
	if info, err := os.Stat(d.Bin); err != nil || !info.IsDir() {
		t.Fatalf("expected bin directory, err %v", err)
	}

	// Running again over existing directories is a no-op.
	if err := d.EnsureState(); err != nil {
		t.Fatalf("ensure state twice: %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if ok, err := FileExists(filepath.Join(dir, "absent")); err != nil || ok {
		t.Fatalf("expected absent file, got ok=%v err=%v", ok, err)
	}

	file := filepath.Join(dir, "present")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("expected present file, got ok=%v err=%v", ok, err)
	}

	// A directory is not a file.
	if ok, err := FileExists(dir); err != nil || ok {
		t.Fatalf("expected directory to report false, got ok=%v err=%v", ok, err)
	}
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()

	script := filepath.Join(dir, "script")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !IsExecutable(script) {
		t.Fatalf("expected %s to be executable", script)
	}

	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if runtime.GOOS != "windows" && IsExecutable(plain) {
		t.Fatalf("expected %s not to be executable", plain)
	}

	if IsExecutable(filepath.Join(dir, "absent")) {
		t.Fatalf("expected absent path not to be executable")
	}
	if IsExecutable(dir) {
		t.Fatalf("expected directory not to be executable")
	}
}
