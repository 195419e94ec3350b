// Package config loads optional project-level settings from .minipm.toml.
// Every field has a working default; the file exists to point installs at
// a registry mirror or relocate the cache.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/minipm/minipm/pkg/install"
	"github.com/minipm/minipm/pkg/manifest"
	"github.com/minipm/minipm/pkg/registry"
	"github.com/minipm/minipm/pkg/state"
)

// FileName is the per-project configuration file.
const FileName = ".minipm.toml"

// Config holds the resolved settings for one project directory.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Cache    CacheConfig    `toml:"cache"`
	Paths    PathsConfig    `toml:"paths"`
}

// RegistryConfig selects the package registry.
type RegistryConfig struct {
	URL string `toml:"url"`
}

// CacheConfig controls the metadata cache.
type CacheConfig struct {
	Dir     string   `toml:"dir"`
	TTL     duration `toml:"ttl"`
	Disable bool     `toml:"disable"`
}

// PathsConfig relocates the files minipm reads and writes, relative to the
// project directory unless absolute.
type PathsConfig struct {
	Manifest string `toml:"manifest"`
	State    string `toml:"state"`
	Modules  string `toml:"modules"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{URL: registry.DefaultBaseURL},
		Cache:    CacheConfig{TTL: duration{24 * time.Hour}},
		Paths: PathsConfig{
			Manifest: manifest.FileName,
			State:    state.FileName,
			Modules:  install.DirName,
		},
	}
}

// Load reads dir's configuration file, if any, on top of the defaults.
// A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Re-apply defaults for fields the file cleared or omitted.
	if cfg.Registry.URL == "" {
		cfg.Registry.URL = registry.DefaultBaseURL
	}
	if cfg.Paths.Manifest == "" {
		cfg.Paths.Manifest = manifest.FileName
	}
	if cfg.Paths.State == "" {
		cfg.Paths.State = state.FileName
	}
	if cfg.Paths.Modules == "" {
		cfg.Paths.Modules = install.DirName
	}
	if cfg.Cache.TTL.Duration <= 0 {
		cfg.Cache.TTL = duration{24 * time.Hour}
	}
	return cfg, nil
}

// ManifestPath returns the manifest location for a project directory.
func (c *Config) ManifestPath(dir string) string { return resolvePath(dir, c.Paths.Manifest) }

// StatePath returns the install state store location for a project directory.
func (c *Config) StatePath(dir string) string { return resolvePath(dir, c.Paths.State) }

// ModulesPath returns the package storage directory for a project directory.
func (c *Config) ModulesPath(dir string) string { return resolvePath(dir, c.Paths.Modules) }

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// duration wraps time.Duration so TTLs can be written as "30m" or "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
