package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xtding233/innings-sim/internal/innings"
	"github.com/xtding233/innings-sim/internal/roster"
)

func newService(t *testing.T) *Service {
	t.Helper()
	raw, reg, err := roster.Builtin()
	require.NoError(t, err)
	return New(raw, reg, zaptest.NewLogger(t))
}

func ptr[T any](v T) *T { return &v }

func TestPlayersSorted(t *testing.T) {
	s := newService(t)
	ps := s.Players()
	require.Len(t, ps, 4)
	assert.Equal(t, "IN001", ps[0].ID)
	assert.Equal(t, "Kirat Boli", ps[0].Name)
	assert.Equal(t, []int{5, 30, 25, 10, 15, 1, 9, 5}, ps[0].Weights)
	assert.Equal(t, "IN004", ps[3].ID)
}

func TestSimulateSeedIsReproducible(t *testing.T) {
	s := newService(t)
	a, err := s.Simulate(Request{Seed: ptr(uint64(42))})
	require.NoError(t, err)
	b, err := s.Simulate(Request{Seed: ptr(uint64(42))})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Result, b.Result)
	assert.Equal(t, a.Commentary, b.Commentary)
	assert.Equal(t, uint64(42), a.Seed)
	assert.Equal(t, "Bangalore", a.Fixture.Batting)
	assert.Equal(t, 40, a.Fixture.Target)
	assert.True(t, a.Result.State.Terminal())
	assert.Equal(t, "4 overs left. 40 runs to win.", a.Commentary[0])
}

func TestSimulateOverrides(t *testing.T) {
	s := newService(t)
	sim, err := s.Simulate(Request{
		Target:  ptr(0),
		Overs:   ptr(1),
		Batting: ptr("Mumbai"),
		Lineup:  []string{"IN004", "IN003", "IN002"},
		Seed:    ptr(uint64(7)),
	})
	require.NoError(t, err)
	assert.Equal(t, innings.StateWon, sim.Result.State)
	assert.Equal(t, 1, sim.Result.BallsBowled)
	assert.Equal(t, "Mumbai", sim.Result.Team)
}

func TestSimulateObserverSeesEveryBall(t *testing.T) {
	s := newService(t)
	var balls int
	obs := countBalls(func() { balls++ })
	sim, err := s.Simulate(Request{Seed: ptr(uint64(3))}, obs)
	require.NoError(t, err)
	assert.Equal(t, sim.Result.BallsBowled, balls)
}

type countBalls func()

func (countBalls) OverStarted(innings.OverStart) {}
func (c countBalls) BallBowled(innings.BallEvent) { c() }
func (countBalls) InningsEnded(innings.Result)   {}

func TestPrepareRejectsBadRequests(t *testing.T) {
	s := newService(t)
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"negative target", Request{Target: ptr(-1)}, innings.ErrInvalidTarget},
		{"zero overs", Request{Overs: ptr(0)}, innings.ErrInvalidOvers},
		{"unknown player", Request{Lineup: []string{"IN001", "XX999"}}, innings.ErrUnknownPlayer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Prepare(tc.req)
			require.ErrorIs(t, err, tc.want)
			assert.True(t, IsClientError(err))
		})
	}
}

func TestPrepareWithoutTarget(t *testing.T) {
	raw, reg, err := roster.Builtin()
	require.NoError(t, err)
	raw.Match.Target = nil
	s := New(raw, reg, nil)
	_, err = s.Prepare(Request{})
	require.ErrorIs(t, err, roster.ErrNoTarget)
	assert.True(t, IsClientError(err))
}

func TestReloadSwapsRoster(t *testing.T) {
	s := newService(t)
	raw, reg, err := roster.Builtin()
	require.NoError(t, err)
	raw.Match.Target = ptr(5)
	s.Reload(raw, reg)

	m, err := s.Prepare(Request{})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Fixture.Target)
}

func TestOdds(t *testing.T) {
	s := newService(t)
	rep, err := s.Odds(context.Background(), Request{Seed: ptr(uint64(9))}, 200, 4)
	require.NoError(t, err)
	assert.Equal(t, 200, rep.Odds.Trials)
	assert.Equal(t, 200, rep.Odds.Won+rep.Odds.Tied+rep.Odds.Lost)
	assert.Equal(t, uint64(9), rep.Seed)

	again, err := s.Odds(context.Background(), Request{Seed: ptr(uint64(9))}, 200, 1)
	require.NoError(t, err)
	assert.Equal(t, rep.Odds, again.Odds)
}

func TestOddsLimits(t *testing.T) {
	s := newService(t)
	_, err := s.Odds(context.Background(), Request{}, 0, 1)
	assert.ErrorIs(t, err, innings.ErrNoTrials)
	assert.True(t, IsClientError(err))

	_, err = s.Odds(context.Background(), Request{}, maxTrials+1, 1)
	assert.ErrorIs(t, err, ErrTooManyTrials)
}

func TestIsClientErrorFalseForOthers(t *testing.T) {
	assert.False(t, IsClientError(context.Canceled))
	assert.False(t, IsClientError(innings.ErrInvariant))
}
