package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xtding233/innings-sim/internal/innings"
	"github.com/xtding233/innings-sim/internal/match"
	"github.com/xtding233/innings-sim/internal/roster"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	raw, reg, err := roster.Builtin()
	require.NoError(t, err)
	log := zaptest.NewLogger(t)
	srv := httptest.NewServer(SetupRoutes(match.New(raw, reg, log), log))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv := newServer(t)
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", nil))
}

func TestPlayers(t *testing.T) {
	srv := newServer(t)
	var ps []match.PlayerInfo
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/players", &ps))
	require.Len(t, ps, 4)
	assert.Equal(t, "Shashi Henra", ps[3].Name)
}

func TestSimulateIsReproducibleWithSeed(t *testing.T) {
	srv := newServer(t)
	var a, b match.Simulation
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/simulate?seed=11", &a))
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/simulate?seed=11", &b))

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Result, b.Result)
	assert.Equal(t, a.Commentary, b.Commentary)
	assert.True(t, a.Result.State.Terminal())
}

func TestSimulateOverrides(t *testing.T) {
	srv := newServer(t)
	var sim match.Simulation
	code := getJSON(t, srv.URL+"/simulate?seed=5&target=0&overs=1&batting=Delhi&lineup=IN003,IN002,IN001", &sim)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, innings.StateWon, sim.Result.State)
	assert.Equal(t, "Delhi", sim.Result.Team)
	assert.Equal(t, []string{"IN003", "IN002", "IN001"}, sim.Fixture.Lineup)
}

func TestSimulateBadRequests(t *testing.T) {
	srv := newServer(t)
	for _, q := range []string{
		"target=-1",
		"target=abc",
		"overs=0",
		"seed=-3",
		"lineup=IN001,NOPE",
	} {
		t.Run(q, func(t *testing.T) {
			var e errResp
			assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/simulate?"+q, &e))
			assert.NotEmpty(t, e.Err)
		})
	}
}

func TestOdds(t *testing.T) {
	srv := newServer(t)
	var rep match.OddsReport
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/odds?seed=1&trials=100&workers=2", &rep))
	assert.Equal(t, 100, rep.Odds.Trials)
	assert.InDelta(t, 1.0, rep.Odds.WinRate+rep.Odds.TieRate+rep.Odds.LossRate, 1e-9)

	var e errResp
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/odds?trials=0", &e))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/odds?workers=x", &e))
}

func TestStream(t *testing.T) {
	srv := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/simulate?seed=11"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var msgs []Message
	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}
		msgs = append(msgs, m)
	}
	require.GreaterOrEqual(t, len(msgs), 4)
	assert.Equal(t, MsgTypeStart, msgs[0].Type)
	require.NotNil(t, msgs[0].Fixture)
	assert.Equal(t, 40, msgs[0].Fixture.Target)
	assert.Equal(t, MsgTypeOver, msgs[1].Type)

	last := msgs[len(msgs)-1]
	require.Equal(t, MsgTypeResult, last.Type)
	balls := 0
	for _, m := range msgs {
		if m.Type == MsgTypeBall {
			balls++
		}
	}
	assert.Equal(t, last.Result.BallsBowled, balls)

	// the streamed innings matches the plain endpoint for the same seed
	var sim match.Simulation
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/simulate?seed=11", &sim))
	assert.Equal(t, sim.Result, *last.Result)
}

func TestStreamRejectsBadRequestBeforeUpgrade(t *testing.T) {
	srv := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/simulate?overs=0"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
