package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil
// so flags can tell them apart from zero values.
type FileConfig struct {
	Match MatchConfig `toml:"match"`
	Odds  OddsConfig  `toml:"odds"`
}

type MatchConfig struct {
	Target    *int    `toml:"target"`
	Overs     *int    `toml:"overs"`
	ConfigDir *string `toml:"config-dir"`
	League    *string `toml:"league"`
	Fixture   *string `toml:"fixture"`
	Color     *bool   `toml:"color"`
}

type OddsConfig struct {
	Trials  *int `toml:"trials"`
	Workers *int `toml:"workers"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", keys[0].String())
	}
	return cfg, nil
}

// Template is written by `kpl config init`.
func Template() string {
	return `# kpl configuration
# Uncomment a value to enable it. CLI flags override config values.

[match]
# target = 40
# overs = 4
# config-dir = "~/.config/kpl/players"
# league = "kpl"
# fixture = "final"
# color = true

[odds]
# trials = 10000
# workers = 4
`
}
