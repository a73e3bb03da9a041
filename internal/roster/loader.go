package roster

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/league/fixture files.
type Paths struct {
	BaseDir string // base directory, e.g., /etc/kpl
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) LeaguePath(league string) string {
	return filepath.Join(p.BaseDir, "leagues", league+".yaml")
}
func (p Paths) FixturePath(league, fixture string) string {
	return filepath.Join(p.BaseDir, "leagues", league, "fixtures", fixture+".yaml")
}

// Files lists every path LoadMerged may read for league/fixture.
func (p Paths) Files(league, fixture string) []string {
	files := []string{p.DefaultPath()}
	if league != "" {
		files = append(files, p.LeaguePath(league))
		if fixture != "" {
			files = append(files, p.FixturePath(league, fixture))
		}
	}
	return files
}

// Loader reads YAML configs and merges default → league → fixture.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "league/fixture"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → league → fixture (both optional).
// The result is not validated.
func (l *Loader) LoadMerged(league, fixture string) (RawConfig, error) {
	key := league + "/" + fixture
	l.mu.RLock()
	cfg, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	merged, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	if league != "" {
		leagueCfg, err := readYAML(l.paths.LeaguePath(league))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read league %s: %w", league, err)
		}
		merged = mergeRaw(merged, leagueCfg)
		if fixture != "" {
			fixtureCfg, err := readYAML(l.paths.FixturePath(league, fixture))
			if err != nil {
				return RawConfig{}, fmt.Errorf("read fixture %s/%s: %w", league, fixture, err)
			}
			merged = mergeRaw(merged, fixtureCfg)
		}
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.mu.Unlock()
	return merged, nil
}

// Load merges, validates and builds the profile registry.
func (l *Loader) Load(league, fixture string) (RawConfig, *Registry, error) {
	raw, err := l.LoadMerged(league, fixture)
	if err != nil {
		return RawConfig{}, nil, err
	}
	if err := ValidateRaw(raw); err != nil {
		return RawConfig{}, nil, err
	}
	reg, err := NewRegistry(raw.Players)
	if err != nil {
		return RawConfig{}, nil, err
	}
	return raw, reg, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	return parseYAML(b)
}

func parseYAML(b []byte) (RawConfig, error) {
	var cfg RawConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b on a: non-nil/non-empty fields in b win.
// Players merge by id; a lineup in b replaces the whole lineup.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// match
	if b.Match.Target != nil {
		out.Match.Target = b.Match.Target
	}
	if b.Match.Overs != nil {
		out.Match.Overs = b.Match.Overs
	}

	out.Batting = mergeTeam(a.Batting, b.Batting)
	out.Bowling = mergeTeam(a.Bowling, b.Bowling)

	// players
	if len(b.Players) > 0 {
		players := make(map[string]PlayerConfig, len(a.Players)+len(b.Players))
		maps.Copy(players, a.Players)
		for id, p := range b.Players {
			base, ok := players[id]
			if !ok {
				players[id] = p
				continue
			}
			if p.Name != "" {
				base.Name = p.Name
			}
			if len(p.Weights) > 0 {
				base.Weights = append([]int(nil), p.Weights...)
			}
			players[id] = base
		}
		out.Players = players
	}

	return out
}

func mergeTeam(a, b *TeamConfig) *TeamConfig {
	switch {
	case b == nil:
		return a
	case a == nil:
		c := *b
		return &c
	}
	c := *a
	if b.Name != "" {
		c.Name = b.Name
	}
	if len(b.Lineup) > 0 {
		c.Lineup = append([]string(nil), b.Lineup...)
	}
	return &c
}
