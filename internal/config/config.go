package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the directory layout and registry location for an invocation.
// Defaults match the historical layout under ~/opt; each value can be
// overridden by its environment variable or by the optional config file.
type Config struct {
	BinDir        string `mapstructure:"bin_dir"`
	PackageDir    string `mapstructure:"package_dir"`
	GitProjectDir string `mapstructure:"git_project_dir"`
	StateDir      string `mapstructure:"state_dir"`
	RegistryFile  string `mapstructure:"registry_file"`
}

// Load reads settings from defaults, the config file (when present) and the
// environment, in increasing order of precedence.
func Load() (Config, error) {
	return load("")
}

// LoadFrom behaves like Load but reads the given config file instead of the
// default location. Used by tests.
func LoadFrom(configFile string) (Config, error) {
	return load(configFile)
}

func load(configFile string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("detect user home: %w", err)
	}

	v := viper.New()
	v.SetDefault("bin_dir", filepath.Join(home, "opt", "bin"))
	v.SetDefault("package_dir", filepath.Join(home, "opt", "packages"))
	v.SetDefault("git_project_dir", filepath.Join(home, "opt", "git_projects"))
	v.SetDefault("state_dir", filepath.Join(home, ".local", "state", "runtool"))
	v.SetDefault("registry_file", filepath.Join(home, ".config", "runtool", "tools.yaml"))

	// Environment names kept from the original shell setup so existing
	// dotfiles keep working.
	bindings := map[string]string{
		"bin_dir":         "TOOL_INSTALLER_BIN_DIR",
		"package_dir":     "TOOL_INSTALLER_PACKAGE_DIR",
		"git_project_dir": "TOOL_INSTALLER_GIT_PROJECT_DIR",
		"state_dir":       "RUNTOOL_STATE_DIR",
		"registry_file":   "RUNTOOL_REGISTRY_FILE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".config", "runtool"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	for name, value := range map[string]*string{
		"bin_dir":         &cfg.BinDir,
		"package_dir":     &cfg.PackageDir,
		"git_project_dir": &cfg.GitProjectDir,
		"state_dir":       &cfg.StateDir,
	} {
		abs, err := filepath.Abs(*value)
		if err != nil {
			return Config{}, fmt.Errorf("resolve %s: %w", name, err)
		}
		*value = abs
	}

	return cfg, nil
}
