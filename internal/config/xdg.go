// Package config provides XDG paths, the CLI's TOML defaults and the
// server's environment.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "kpl", "config.toml")
}

// DefaultRosterDir is where the CLI looks for YAML rosters when no
// --config-dir is given.
func DefaultRosterDir() string {
	return filepath.Join(XDGConfigHome(), "kpl", "players")
}
