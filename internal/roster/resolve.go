// resolve.go
package roster

import (
	"errors"
	"slices"
)

var ErrNoTarget = errors.New("match.target is not configured")

const (
	defaultOvers   = 20
	defaultBatting = "Batting XI"
)

// Overrides carries CLI/query overrides like target/overs/lineup.
type Overrides struct {
	Target  *int
	Overs   *int
	Batting *string
	Lineup  []string
}

// Resolve merges raw settings and overrides into a Fixture.
// Overs default to 20; the lineup defaults to the configured batting order.
func Resolve(raw RawConfig, o Overrides) (Fixture, error) {
	f := Fixture{
		Overs:   defaultOvers,
		Batting: defaultBatting,
		Version: raw.Version,
	}

	switch {
	case o.Target != nil:
		f.Target = *o.Target
	case raw.Match.Target != nil:
		f.Target = *raw.Match.Target
	default:
		return Fixture{}, ErrNoTarget
	}
	if o.Overs != nil {
		f.Overs = *o.Overs
	} else if raw.Match.Overs != nil {
		f.Overs = *raw.Match.Overs
	}

	if raw.Batting != nil {
		if raw.Batting.Name != "" {
			f.Batting = raw.Batting.Name
		}
		f.Lineup = slices.Clone(raw.Batting.Lineup)
	}
	if o.Batting != nil && *o.Batting != "" {
		f.Batting = *o.Batting
	}
	if len(o.Lineup) > 0 {
		f.Lineup = slices.Clone(o.Lineup)
	}
	if raw.Bowling != nil {
		f.Bowling = raw.Bowling.Name
	}
	return f, nil
}
