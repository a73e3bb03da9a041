// types.go
package roster

// RawConfig is one YAML layer: player profiles and fixture settings.
type RawConfig struct {
	Version string                  `yaml:"version"`
	Match   MatchConfig             `yaml:"match"`
	Batting *TeamConfig             `yaml:"batting,omitempty"`
	Bowling *TeamConfig             `yaml:"bowling,omitempty"`
	Players map[string]PlayerConfig `yaml:"players,omitempty"`
	Notes   string                  `yaml:"notes,omitempty"`
}

type MatchConfig struct {
	Target *int `yaml:"target"`
	Overs  *int `yaml:"overs"`
}

type TeamConfig struct {
	Name   string   `yaml:"name"`
	Lineup []string `yaml:"lineup,omitempty"` // batting order
}

// PlayerConfig weights align with 0,1,2,3,4,5,6,OUT.
type PlayerConfig struct {
	Name    string `yaml:"name"`
	Weights []int  `yaml:"weights"`
}

// Fixture is the resolved chase handed to the innings engine.
type Fixture struct {
	Target  int      `json:"target"`
	Overs   int      `json:"overs"`
	Batting string   `json:"batting"`
	Bowling string   `json:"bowling,omitempty"`
	Lineup  []string `json:"lineup"`
	Version string   `json:"version,omitempty"` // effective config version for tracing
}
