package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xtding233/innings-sim/internal/innings"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// match
	if cfg.Match.Target != nil && *cfg.Match.Target < 0 {
		errs = append(errs, "match.target must be >= 0")
	}
	if cfg.Match.Overs != nil && *cfg.Match.Overs <= 0 {
		errs = append(errs, "match.overs must be >= 1")
	}

	// players, in id order so messages are stable
	ids := make([]string, 0, len(cfg.Players))
	for id := range cfg.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := cfg.Players[id]
		if strings.TrimSpace(id) == "" {
			errs = append(errs, "players: empty player id")
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("players.%s.name is required", id))
		}
		if len(p.Weights) != len(innings.Outcomes) {
			errs = append(errs, fmt.Sprintf("players.%s.weights must have %d entries (0,1,2,3,4,5,6,OUT), got %d", id, len(innings.Outcomes), len(p.Weights)))
			continue
		}
		sum := 0
		for i, w := range p.Weights {
			if w < 0 {
				errs = append(errs, fmt.Sprintf("players.%s.weights[%d] must be >= 0", id, i))
			}
			sum += w
		}
		if sum <= 0 {
			errs = append(errs, fmt.Sprintf("players.%s.weights must sum to > 0", id))
		}
	}

	// batting lineup must reference known players
	if cfg.Batting != nil {
		for i, id := range cfg.Batting.Lineup {
			if _, ok := cfg.Players[id]; !ok {
				errs = append(errs, fmt.Sprintf("batting.lineup[%d]: unknown player %q", i, id))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
