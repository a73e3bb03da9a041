package innings

import "strconv"

// Outcome is the result of one legal ball: runs scored, or OutcomeOut.
type Outcome int

const OutcomeOut Outcome = -1

// Outcomes is the canonical outcome set. Profile weights align with it 1:1.
var Outcomes = []Outcome{0, 1, 2, 3, 4, 5, 6, OutcomeOut}

func (o Outcome) IsOut() bool { return o == OutcomeOut }

// Runs returns the runs scored off the ball; a dismissal scores 0.
func (o Outcome) Runs() int {
	if o.IsOut() {
		return 0
	}
	return int(o)
}

// RotatesStrike reports whether the batsmen cross: odd runs only.
func (o Outcome) RotatesStrike() bool {
	return !o.IsOut() && int(o)%2 == 1
}

func (o Outcome) String() string {
	if o.IsOut() {
		return "OUT"
	}
	return strconv.Itoa(int(o))
}
