package innings

import "fmt"

// Profile is a player's fixed scoring profile. It is never mutated after
// NewProfile, so one *Profile may be shared by any number of innings.
type Profile struct {
	id      string
	name    string
	weights []int
}

// NewProfile validates weights against Outcomes and copies them.
func NewProfile(id, name string, weights []int) (*Profile, error) {
	if _, err := validateWeights(weights, len(Outcomes)); err != nil {
		return nil, fmt.Errorf("player %s: %w", id, err)
	}
	return &Profile{
		id:      id,
		name:    name,
		weights: append([]int(nil), weights...),
	}, nil
}

func (p *Profile) ID() string   { return p.id }
func (p *Profile) Name() string { return p.name }

// Weights returns a copy of the scoring weights, aligned with Outcomes.
func (p *Profile) Weights() []int { return append([]int(nil), p.weights...) }

// Probability returns the chance of outcome o on any one ball.
func (p *Profile) Probability(o Outcome) float64 {
	total := 0
	hit := 0
	for i, w := range p.weights {
		total += w
		if Outcomes[i] == o {
			hit = w
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hit) / float64(total)
}

// ProfileSource resolves player ids to profiles. Misses wrap ErrUnknownPlayer.
type ProfileSource interface {
	Profile(id string) (*Profile, error)
}

// Profiles is a read-only map-backed ProfileSource.
type Profiles map[string]*Profile

func (m Profiles) Profile(id string) (*Profile, error) {
	p, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	return p, nil
}
