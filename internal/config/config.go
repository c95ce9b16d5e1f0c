// Package config resolves the directory layout malt operates on: the
// install prefix, the cellar, the repository checkout, and the scratch
// root. Resolution order is defaults, then the optional config file, then
// MALT_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the effective malt paths.
type Config struct {
	// Prefix is the root of the malt installation, the directory whose
	// bin/, lib/ and share/ receive links for installed packages.
	// Default: /opt/malt (/usr/local on Intel Macs)
	Prefix string `yaml:"prefix"`

	// Cellar is the installed-package store, one directory per package
	// with one subdirectory per installed version.
	// Default: <prefix>/Cellar
	Cellar string `yaml:"cellar"`

	// Repository is the checkout malt maintains itself from.
	// Default: <prefix>/Library
	Repository string `yaml:"repository"`

	// Temp is the scratch root where builds stage before moving into the
	// cellar.
	// Default: /private/tmp on macOS, /tmp elsewhere
	Temp string `yaml:"temp"`
}

// DefaultPrefix returns the canonical install prefix for this host.
func DefaultPrefix() string {
	if runtime.GOOS == "darwin" && runtime.GOARCH == "amd64" {
		return "/usr/local"
	}
	return "/opt/malt"
}

func defaultTemp() string {
	if runtime.GOOS == "darwin" {
		return "/private/tmp"
	}
	return "/tmp"
}

// Default returns the default configuration for this host.
func Default() Config {
	var cfg Config
	cfg.fillDefaults()
	return cfg
}

// Load resolves the effective configuration: defaults, then the optional
// config file ($MALT_CONFIG or ~/.config/malt/config.yaml), then MALT_*
// environment overrides. ~/.config/malt/env is loaded into the environment
// first so MALT_* settings can be kept in a file.
//
// Environment variables:
//   - MALT_PREFIX: install prefix (default: /opt/malt)
//   - MALT_CELLAR: installed-package store (default: <prefix>/Cellar)
//   - MALT_REPOSITORY: malt's own checkout (default: <prefix>/Library)
//   - MALT_TEMP: build scratch root (default: /private/tmp)
//
// Returns an error if the config file is malformed or a resolved path is
// not absolute.
func Load() (Config, error) {
	var cfg Config

	if err := loadEnvFile(); err != nil {
		return cfg, err
	}
	if err := cfg.applyFile(configFilePath()); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid malt configuration: %w", err)
	}
	return cfg, nil
}

// loadEnvFile loads ~/.config/malt/env into the process environment when
// it exists. Variables already set in the environment win.
func loadEnvFile() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ".config", "malt", "env")
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// configFilePath returns $MALT_CONFIG when set, else the default location
// under the user config directory.
func configFilePath() string {
	if path := os.Getenv("MALT_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "malt", "config.yaml")
}

// applyFile overlays values from a YAML config file. A missing file is not
// an error.
func (c *Config) applyFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays MALT_* environment overrides.
func (c *Config) applyEnv() error {
	if err := parseEnvString("MALT_PREFIX", &c.Prefix); err != nil {
		return err
	}
	if err := parseEnvString("MALT_CELLAR", &c.Cellar); err != nil {
		return err
	}
	if err := parseEnvString("MALT_REPOSITORY", &c.Repository); err != nil {
		return err
	}
	return parseEnvString("MALT_TEMP", &c.Temp)
}

// fillDefaults derives any unset path from the prefix, so an override of
// the prefix alone moves the whole layout.
func (c *Config) fillDefaults() {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix()
	}
	if c.Cellar == "" {
		c.Cellar = filepath.Join(c.Prefix, "Cellar")
	}
	if c.Repository == "" {
		c.Repository = filepath.Join(c.Prefix, "Library")
	}
	if c.Temp == "" {
		c.Temp = defaultTemp()
	}
}

// Validate checks that every resolved path is absolute.
func (c Config) Validate() error {
	if !filepath.IsAbs(c.Prefix) {
		return fmt.Errorf("prefix must be an absolute path (got %q)", c.Prefix)
	}
	if !filepath.IsAbs(c.Cellar) {
		return fmt.Errorf("cellar must be an absolute path (got %q)", c.Cellar)
	}
	if !filepath.IsAbs(c.Repository) {
		return fmt.Errorf("repository must be an absolute path (got %q)", c.Repository)
	}
	if !filepath.IsAbs(c.Temp) {
		return fmt.Errorf("temp must be an absolute path (got %q)", c.Temp)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Prefix: %s, Cellar: %s, Repository: %s, Temp: %s}",
		c.Prefix, c.Cellar, c.Repository, c.Temp,
	)
}

// SystemPrefixes returns the directory roots diagnostics scan for stray
// files: the classic third-party install prefixes plus malt's own.
func (c Config) SystemPrefixes() []string {
	prefixes := []string{"/usr/local", "/opt/local", "/usr/X11", "/sw"}
	for _, p := range prefixes {
		if p == c.Prefix {
			return prefixes
		}
	}
	return append(prefixes, c.Prefix)
}

// StandardDirectories returns the directories malt must be able to write
// to when installing and linking packages.
func (c Config) StandardDirectories() []string {
	return []string{
		c.Prefix,
		filepath.Join(c.Prefix, "bin"),
		filepath.Join(c.Prefix, "etc"),
		filepath.Join(c.Prefix, "include"),
		filepath.Join(c.Prefix, "lib"),
		filepath.Join(c.Prefix, "share"),
		filepath.Join(c.Prefix, "var"),
		c.Cellar,
		c.Repository,
	}
}

// LinkedRecordsDir returns the directory of link records, one symlink per
// linked package.
func (c Config) LinkedRecordsDir() string {
	return filepath.Join(c.Prefix, "var", "malt", "linked")
}

// parseEnvString parses a string from an environment variable
func parseEnvString(key string, dest *string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	*dest = value
	return nil
}
