package commentary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/innings-sim/internal/innings"
)

// replay returns IntN values in order.
type replay []int

func (r *replay) IntN(int) int {
	v := (*r)[0]
	*r = (*r)[1:]
	return v
}

// scripted plays a chase of 10 in 2 overs where every outcome is equally
// likely, so draw k (0-based) always yields innings.Outcomes[k].
func scripted(t *testing.T, obs innings.Observer) innings.Result {
	t.Helper()
	flat := []int{1, 1, 1, 1, 1, 1, 1, 1}
	src := innings.Profiles{}
	l := innings.NewLineup(src)
	for _, p := range []struct{ id, name string }{
		{"IN001", "Kirat Boli"}, {"IN002", "N.S Nodhi"}, {"IN003", "R Rumrah"},
	} {
		prof, err := innings.NewProfile(p.id, p.name, flat)
		require.NoError(t, err)
		src[p.id] = prof
		l.Enqueue(p.id)
	}
	// 1, 4, OUT, 0, 2, 3
	draws := replay{1, 4, 7, 0, 2, 3}
	e, err := innings.NewEngine(innings.Config{Team: "Bangalore", Target: 10, Overs: 2}, l,
		innings.WithRandomSource(&draws), innings.WithObserver(obs))
	require.NoError(t, err)
	res, err := e.Run()
	require.NoError(t, err)
	return res
}

func assertSameText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Fatalf("commentary mismatch:\n%s", diff)
}

func TestCommentatorGolden(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, Style{})
	scripted(t, c)
	require.NoError(t, c.Err())

	want := `
2 overs left. 10 runs to win.
0.1 Kirat Boli scores 1 run
0.2 N.S Nodhi scores 4 runs
0.3 N.S Nodhi bowled out
0.4 R Rumrah scores 0 run
0.5 R Rumrah scores 2 runs
0.6 R Rumrah scores 3 runs

Bangalore won by 2 wickets and 6 balls remaining
N.S Nodhi - 4 (2 balls)
Kirat Boli - 1* (1 ball)
R Rumrah - 5* (3 balls)
Bangalore 10/1 (1.0 overs)
`
	assertSameText(t, want, buf.String())
}

func TestTranscriptOmitsBlankLines(t *testing.T) {
	tr := &Transcript{}
	res := scripted(t, tr)
	assert.Equal(t, innings.StateWon, res.State)
	require.Len(t, tr.Lines, 12)
	assert.Equal(t, "2 overs left. 10 runs to win.", tr.Lines[0])
	assert.Equal(t, "Bangalore won by 2 wickets and 6 balls remaining", tr.Lines[7])
	for _, l := range tr.Lines {
		assert.NotEmpty(t, strings.TrimSpace(l))
	}
}

func TestResultLines(t *testing.T) {
	cases := []struct {
		name string
		res  innings.Result
		want string
	}{
		{"all out", innings.Result{Team: "Bangalore", State: innings.StateAllOut, RunsShort: 12}, "Bangalore lost the match by 12 runs"},
		{"overs up", innings.Result{Team: "Bangalore", State: innings.StateOversComplete, RunsShort: 1}, "Bangalore lost by 1 run"},
		{"tie", innings.Result{Team: "Bangalore", State: innings.StateTied}, "Match was a tie"},
		{"won", innings.Result{Team: "Bangalore", State: innings.StateWon, WicketsInHand: 1, BallsRemaining: 1}, "Bangalore won by 1 wicket and 1 ball remaining"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResultLine(tc.res))
		})
	}
}

func TestBallLines(t *testing.T) {
	batter := innings.BatterCard{Name: "R Rumrah"}
	cases := []struct {
		name string
		out  innings.Outcome
		want string
	}{
		{"dot ball", 0, "1.3 R Rumrah scores 0 run"},
		{"single", 1, "1.3 R Rumrah scores 1 run"},
		{"two", 2, "1.3 R Rumrah scores 2 runs"},
		{"wicket", innings.OutcomeOut, "1.3 R Rumrah bowled out"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := innings.BallEvent{Over: 1, Ball: 3, Outcome: tc.out, Batter: batter}
			assert.Equal(t, tc.want, BallLine(ev))
		})
	}
}

func TestOverLines(t *testing.T) {
	assert.Equal(t, "1 over left. 1 run to win.", OverLine(innings.OverStart{Over: 3, OversLeft: 1, RunsNeeded: 1}))
	assert.Equal(t, "2 overs left. 0 runs to win.", OverLine(innings.OverStart{Over: 2, OversLeft: 2, RunsNeeded: 0}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestCommentatorKeepsFirstWriteError(t *testing.T) {
	c := New(failingWriter{}, Style{})
	res := scripted(t, c)
	assert.Equal(t, innings.StateWon, res.State)
	assert.ErrorIs(t, c.Err(), assert.AnError)
}

func TestTerminalStyleRenders(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, TerminalStyle(&buf))
	scripted(t, c)
	require.NoError(t, c.Err())
	assert.Contains(t, buf.String(), "Kirat Boli scores 1 run")
	assert.Contains(t, buf.String(), "Bangalore won by 2 wickets")
}
