package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BinDir != filepath.Join(home, "opt", "bin") {
		t.Fatalf("unexpected bin dir %q", cfg.BinDir)
	}
	if cfg.PackageDir != filepath.Join(home, "opt", "packages") {
		t.Fatalf("unexpected package dir %q", cfg.PackageDir)
	}
	if cfg.GitProjectDir != filepath.Join(home, "opt", "git_projects") {
		t.Fatalf("unexpected git project dir %q", cfg.GitProjectDir)
	}
	if cfg.StateDir != filepath.Join(home, ".local", "state", "runtool") {
		t.Fatalf("unexpected state dir %q", cfg.StateDir)
	}
	if cfg.RegistryFile != filepath.Join(home, ".config", "runtool", "tools.yaml") {
		t.Fatalf("unexpected registry file %q", cfg.RegistryFile)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	home := t.TempDir()
	override := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TOOL_INSTALLER_BIN_DIR", filepath.Join(override, "bin"))
	t.Setenv("TOOL_INSTALLER_PACKAGE_DIR", filepath.Join(override, "packages"))
	t.Setenv("TOOL_INSTALLER_GIT_PROJECT_DIR", filepath.Join(override, "git"))
	t.Setenv("RUNTOOL_STATE_DIR", filepath.Join(override, "state"))
	t.Setenv("RUNTOOL_REGISTRY_FILE", filepath.Join(override, "tools.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BinDir != filepath.Join(override, "bin") {
		t.Fatalf("env override ignored for bin dir: %q", cfg.BinDir)
	}
	if cfg.PackageDir != filepath.Join(override, "packages") {
		t.Fatalf("env override ignored for package dir: %q", cfg.PackageDir)
	}
	if cfg.GitProjectDir != filepath.Join(override, "git") {
		t.Fatalf("env override ignored for git project dir: %q", cfg.GitProjectDir)
	}
	if cfg.StateDir != filepath.Join(override, "state") {
		t.Fatalf("env override ignored for state dir: %q", cfg.StateDir)
	}
	if cfg.RegistryFile != filepath.Join(override, "tools.yaml") {
		t.Fatalf("env override ignored for registry file: %q", cfg.RegistryFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	file := filepath.Join(t.TempDir(), "config.yaml")
	data := "" +
		"bin_dir: /srv/tools/bin\n" +
		"state_dir: /srv/tools/state\n"
	if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BinDir != filepath.FromSlash("/srv/tools/bin") {
		t.Fatalf("config file ignored for bin dir: %q", cfg.BinDir)
	}
	if cfg.StateDir != filepath.FromSlash("/srv/tools/state") {
		t.Fatalf("config file ignored for state dir: %q", cfg.StateDir)
	}
	// Settings absent from the file keep their defaults.
	if cfg.PackageDir != filepath.Join(home, "opt", "packages") {
		t.Fatalf("unexpected package dir %q", cfg.PackageDir)
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TOOL_INSTALLER_BIN_DIR", "/env/bin")

	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte("bin_dir: /file/bin\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BinDir != filepath.FromSlash("/env/bin") {
		t.Fatalf("expected env to win over config file, got %q", cfg.BinDir)
	}
}
