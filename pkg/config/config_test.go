package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minipm/minipm/pkg/registry"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Registry.URL != registry.DefaultBaseURL {
		t.Errorf("Registry.URL = %q, want default", cfg.Registry.URL)
	}
	if cfg.Paths.Manifest != "package.json" {
		t.Errorf("Paths.Manifest = %q, want package.json", cfg.Paths.Manifest)
	}
	if cfg.Paths.Modules != "node_modules" {
		t.Errorf("Paths.Modules = %q, want node_modules", cfg.Paths.Modules)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL.Duration)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[registry]
url = "https://mirror.example"

[cache]
ttl = "30m"
disable = true

[paths]
modules = "vendor_modules"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Registry.URL != "https://mirror.example" {
		t.Errorf("Registry.URL = %q", cfg.Registry.URL)
	}
	if cfg.Cache.TTL.Duration != 30*time.Minute {
		t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL.Duration)
	}
	if !cfg.Cache.Disable {
		t.Error("Cache.Disable should be true")
	}
	if cfg.Paths.Modules != "vendor_modules" {
		t.Errorf("Paths.Modules = %q", cfg.Paths.Modules)
	}
	// Fields the file does not mention keep their defaults.
	if cfg.Paths.Manifest != "package.json" {
		t.Errorf("Paths.Manifest = %q, want default", cfg.Paths.Manifest)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("registry = {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("Load() accepted malformed TOML")
	}
}

func TestPathResolution(t *testing.T) {
	cfg := Default()
	if got := cfg.ManifestPath("/proj"); got != filepath.Join("/proj", "package.json") {
		t.Errorf("ManifestPath = %q", got)
	}

	cfg.Paths.State = "/var/lib/minipm/state.json"
	if got := cfg.StatePath("/proj"); got != "/var/lib/minipm/state.json" {
		t.Errorf("absolute paths must pass through, got %q", got)
	}
}
