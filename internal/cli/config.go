package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the optional config file at
// ~/.config/antmaze/config.toml (or $XDG_CONFIG_HOME/antmaze/config.toml).
//
//	numbers = true        # default --numbers for fmt
//	cache_dir = "/tmp/am" # override the render cache location
//	no_color = true       # disable styled output
type Config struct {
	Numbers  bool   `toml:"numbers"`
	CacheDir string `toml:"cache_dir"`
	NoColor  bool   `toml:"no_color"`
}

// LoadConfig reads the user's config file. A missing file or unreadable
// home directory yields the zero-value defaults; a present but malformed
// file is ignored the same way, since config must never block a command.
func LoadConfig() *Config {
	cfg := &Config{}
	path, err := configPath()
	if err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return &Config{}
	}
	return cfg
}

// configPath returns the config file path using XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
