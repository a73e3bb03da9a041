package innings

// State of an innings. The last four are terminal.
type State string

const (
	StateNotStarted    State = "not_started"
	StateInProgress    State = "in_progress"
	StateWon           State = "won"            // target reached
	StateAllOut        State = "all_out"        // batsmen exhausted before target and overs
	StateTied          State = "tied"           // overs done, one run short of target
	StateOversComplete State = "overs_complete" // overs done, any other shortfall
)

func (s State) Terminal() bool {
	switch s {
	case StateWon, StateAllOut, StateTied, StateOversComplete:
		return true
	}
	return false
}

// OverStart is reported before the first ball of every over.
type OverStart struct {
	Over       int `json:"over"` // 0-based
	OversLeft  int `json:"overs_left"`
	RunsNeeded int `json:"runs_needed"`
}

// BallEvent reports one ball after it has been applied.
type BallEvent struct {
	Over     int         `json:"over"` // 0-based
	Ball     int         `json:"ball"` // 1..6
	Outcome  Outcome     `json:"outcome"`
	Batter   BatterCard  `json:"batter"`             // the batter who faced, after the ball
	Incoming *BatterCard `json:"incoming,omitempty"` // replacement after a dismissal
	Score    int         `json:"score"`
	Wickets  int         `json:"wickets"`
	State    State       `json:"state"`
}

// Result is the final classification of an innings.
type Result struct {
	Team           string       `json:"team"`
	State          State        `json:"state"`
	Target         int          `json:"target"`
	Overs          int          `json:"overs"`
	Score          int          `json:"score"`
	Wickets        int          `json:"wickets"`
	BallsBowled    int          `json:"balls_bowled"`
	WicketsInHand  int          `json:"wickets_in_hand,omitempty"` // set on a win
	BallsRemaining int          `json:"balls_remaining,omitempty"` // set on a win
	RunsShort      int          `json:"runs_short,omitempty"`      // set unless won
	Batters        []BatterCard `json:"batters"`
}

func (r Result) Won() bool { return r.State == StateWon }

// Observer receives engine progress for presentation. Calls happen on the
// goroutine driving the engine.
type Observer interface {
	OverStarted(OverStart)
	BallBowled(BallEvent)
	InningsEnded(Result)
}

type observers []Observer

func (obs observers) OverStarted(s OverStart) {
	for _, o := range obs {
		o.OverStarted(s)
	}
}

func (obs observers) BallBowled(ev BallEvent) {
	for _, o := range obs {
		o.BallBowled(ev)
	}
}

func (obs observers) InningsEnded(r Result) {
	for _, o := range obs {
		o.InningsEnded(r)
	}
}
