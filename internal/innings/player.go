package innings

// Player is one batter's state for a single innings.
type Player struct {
	profile    *Profile
	runs       int
	ballsFaced int
	out        bool
}

func NewPlayer(profile *Profile) *Player {
	return &Player{profile: profile}
}

// FaceBall samples this player's outcome for one ball. It does not change
// the player; the engine applies the result via RecordBall/Dismiss.
func (p *Player) FaceBall(rng RandomSource) (Outcome, error) {
	return Sample(p.profile.weights, Outcomes, rng)
}

// RecordBall counts a ball faced and adds runs when runs >= 0.
func (p *Player) RecordBall(runs int) {
	p.ballsFaced++
	if runs >= 0 {
		p.runs += runs
	}
}

func (p *Player) Dismiss() { p.out = true }

func (p *Player) ID() string      { return p.profile.id }
func (p *Player) Name() string    { return p.profile.name }
func (p *Player) Runs() int       { return p.runs }
func (p *Player) BallsFaced() int { return p.ballsFaced }
func (p *Player) IsOut() bool     { return p.out }

// BatterCard is a frozen copy of a player's innings.
type BatterCard struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Runs       int    `json:"runs"`
	BallsFaced int    `json:"balls_faced"`
	NotOut     bool   `json:"not_out"`
}

// StrikeRate is runs per 100 balls.
func (c BatterCard) StrikeRate() float64 {
	if c.BallsFaced == 0 {
		return 0
	}
	return float64(c.Runs) * 100 / float64(c.BallsFaced)
}

func (p *Player) Card() BatterCard {
	return BatterCard{
		ID:         p.profile.id,
		Name:       p.profile.name,
		Runs:       p.runs,
		BallsFaced: p.ballsFaced,
		NotOut:     !p.out,
	}
}
