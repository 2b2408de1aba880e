package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "antmaze")
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	writeConfig(t, "numbers = true\ncache_dir = \"/tmp/antmaze-cache\"\n")

	cfg := LoadConfig()
	if !cfg.Numbers {
		t.Error("Numbers = false, want true")
	}
	if cfg.CacheDir != "/tmp/antmaze-cache" {
		t.Errorf("CacheDir = %q, want /tmp/antmaze-cache", cfg.CacheDir)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadConfig()
	if cfg.Numbers || cfg.CacheDir != "" || cfg.NoColor {
		t.Errorf("missing config file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	writeConfig(t, "numbers = {{{\n")

	cfg := LoadConfig()
	if cfg.Numbers {
		t.Error("malformed config should yield defaults")
	}
}
