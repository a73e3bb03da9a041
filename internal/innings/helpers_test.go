package innings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedRNG replays draws; each value is the r in [1, total] Sample will see.
type scriptedRNG struct {
	draws []int
	next  int
}

func (s *scriptedRNG) IntN(n int) int {
	r := s.draws[s.next%len(s.draws)]
	s.next++
	if r < 1 || r > n {
		panic("scripted draw out of range")
	}
	return r - 1
}

// always returns weights that can only produce o.
func always(o Outcome) []int {
	w := make([]int, len(Outcomes))
	for i, x := range Outcomes {
		if x == o {
			w[i] = 1
		}
	}
	return w
}

func mustProfile(t *testing.T, id, name string, weights []int) *Profile {
	t.Helper()
	p, err := NewProfile(id, name, weights)
	require.NoError(t, err)
	return p
}

// lineupOf builds a lineup of n players sharing one profile.
func lineupOf(t *testing.T, n int, weights []int) *Lineup {
	t.Helper()
	src := Profiles{}
	l := NewLineup(src)
	for i := 0; i < n; i++ {
		id := string(rune('A' + i))
		src[id] = mustProfile(t, id, "Player "+id, weights)
		l.Enqueue(id)
	}
	return l
}

// recorder keeps everything an engine reports.
type recorder struct {
	overs  []OverStart
	balls  []BallEvent
	result *Result
}

func (r *recorder) OverStarted(s OverStart) { r.overs = append(r.overs, s) }
func (r *recorder) BallBowled(ev BallEvent) { r.balls = append(r.balls, ev) }
func (r *recorder) InningsEnded(res Result) { r.result = &res }
