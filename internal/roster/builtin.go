package roster

import (
	_ "embed"
	"fmt"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the bundled four-player Bangalore chase, used when no
// config directory is given.
func Builtin() (RawConfig, *Registry, error) {
	raw, err := parseYAML(builtinYAML)
	if err != nil {
		return RawConfig{}, nil, fmt.Errorf("builtin roster: %w", err)
	}
	if err := ValidateRaw(raw); err != nil {
		return RawConfig{}, nil, fmt.Errorf("builtin roster: %w", err)
	}
	reg, err := NewRegistry(raw.Players)
	if err != nil {
		return RawConfig{}, nil, fmt.Errorf("builtin roster: %w", err)
	}
	return raw, reg, nil
}

// Source loads from dir, or the builtin roster when dir is empty.
func Source(dir, league, fixture string) (RawConfig, *Registry, error) {
	if dir == "" {
		return Builtin()
	}
	return NewLoader(dir).Load(league, fixture)
}
