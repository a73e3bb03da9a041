package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/xtding233/innings-sim/internal/innings"
	"github.com/xtding233/innings-sim/internal/roster"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Stream message types.
const (
	MsgTypeStart  = "START"
	MsgTypeOver   = "OVER"
	MsgTypeBall   = "BALL"
	MsgTypeResult = "RESULT"
	MsgTypeError  = "ERROR"
)

// Message is one frame of the ball-by-ball stream.
type Message struct {
	Type    string             `json:"type"`
	ID      string             `json:"id,omitempty"`
	Seed    uint64             `json:"seed,omitempty"`
	Fixture *roster.Fixture    `json:"fixture,omitempty"`
	Over    *innings.OverStart `json:"over,omitempty"`
	Ball    *innings.BallEvent `json:"ball,omitempty"`
	Result  *innings.Result    `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// wsStream forwards engine progress to one websocket client. After the
// first write error it drops the rest.
type wsStream struct {
	conn *websocket.Conn
	err  error
}

func (s *wsStream) send(m Message) {
	if s.err != nil {
		return
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	s.err = s.conn.WriteJSON(m)
}

func (s *wsStream) OverStarted(o innings.OverStart) {
	s.send(Message{Type: MsgTypeOver, Over: &o})
}

func (s *wsStream) BallBowled(ev innings.BallEvent) {
	s.send(Message{Type: MsgTypeBall, Ball: &ev})
}

func (s *wsStream) InningsEnded(r innings.Result) {
	s.send(Message{Type: MsgTypeResult, Result: &r})
}

// stream validates the query before upgrading so bad requests still get a
// plain 400, then plays the innings one frame per event.
func (h *handlers) stream(w http.ResponseWriter, r *http.Request) {
	req, msg := parseRequest(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	m, err := h.svc.Prepare(req)
	if err != nil {
		h.fail(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s := &wsStream{conn: conn}
	s.send(Message{Type: MsgTypeStart, ID: m.ID, Seed: m.Seed, Fixture: &m.Fixture})
	if _, err := m.Play(s); err != nil {
		s.send(Message{Type: MsgTypeError, Error: err.Error()})
	}
	if s.err != nil {
		h.log.Info("stream client gone", zap.String("innings", m.ID), zap.Error(s.err))
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "innings over"),
		time.Now().Add(writeWait))
}
