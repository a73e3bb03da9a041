// Package commentary renders innings progress as ball-by-ball text.
package commentary

import (
	"fmt"

	"github.com/xtding233/innings-sim/internal/innings"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// OverLine announces an over: "4 overs left. 40 runs to win."
func OverLine(s innings.OverStart) string {
	return fmt.Sprintf("%d %s left. %d %s to win.",
		s.OversLeft, plural(s.OversLeft, "over", "overs"),
		s.RunsNeeded, plural(s.RunsNeeded, "run", "runs"))
}

// BallLine describes one ball: "0.1 Kirat Boli scores 1 run". A dot ball
// also reads "scores 0 run".
func BallLine(ev innings.BallEvent) string {
	if ev.Outcome.IsOut() {
		return fmt.Sprintf("%d.%d %s bowled out", ev.Over, ev.Ball, ev.Batter.Name)
	}
	runs := ev.Outcome.Runs()
	unit := "runs"
	if runs <= 1 {
		unit = "run"
	}
	return fmt.Sprintf("%d.%d %s scores %d %s", ev.Over, ev.Ball, ev.Batter.Name, runs, unit)
}

// ResultLine classifies the finished innings.
func ResultLine(r innings.Result) string {
	switch r.State {
	case innings.StateWon:
		return fmt.Sprintf("%s won by %d %s and %d %s remaining",
			r.Team,
			r.WicketsInHand, plural(r.WicketsInHand, "wicket", "wickets"),
			r.BallsRemaining, plural(r.BallsRemaining, "ball", "balls"))
	case innings.StateAllOut:
		return fmt.Sprintf("%s lost the match by %d %s", r.Team, r.RunsShort, plural(r.RunsShort, "run", "runs"))
	case innings.StateTied:
		return "Match was a tie"
	case innings.StateOversComplete:
		return fmt.Sprintf("%s lost by %d %s", r.Team, r.RunsShort, plural(r.RunsShort, "run", "runs"))
	}
	return fmt.Sprintf("%s: innings %s", r.Team, r.State)
}

// CardLine is one scorecard row; not-out batters get an asterisk.
func CardLine(c innings.BatterCard) string {
	star := ""
	if c.NotOut {
		star = "*"
	}
	return fmt.Sprintf("%s - %d%s (%d %s)", c.Name, c.Runs, star, c.BallsFaced, plural(c.BallsFaced, "ball", "balls"))
}

// ScoreLine is the team total, e.g. "Bangalore 38/2 (3.4 overs)".
func ScoreLine(r innings.Result) string {
	overs := r.BallsBowled / innings.BallsPerOver
	balls := r.BallsBowled % innings.BallsPerOver
	return fmt.Sprintf("%s %d/%d (%d.%d overs)", r.Team, r.Score, r.Wickets, overs, balls)
}
