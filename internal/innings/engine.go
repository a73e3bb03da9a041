package innings

import (
	"fmt"

	"go.uber.org/zap"
)

const BallsPerOver = 6

// Config describes the chase.
type Config struct {
	Team   string // batting team name, reporting only
	Target int    // runs needed to win, >= 0
	Overs  int    // > 0
}

// Option configures an Engine.
type Option func(*Engine)

func WithRandomSource(rng RandomSource) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithObserver may be given more than once; observers run in order.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.obs = append(e.obs, o)
		}
	}
}

// Engine simulates one innings ball by ball. It is not safe for concurrent
// use; run independent innings on independent engines.
type Engine struct {
	cfg    Config
	lineup *Lineup
	rng    RandomSource
	log    *zap.Logger
	obs    observers

	state   State
	over    int // 0-based
	ball    int // balls bowled in the current over
	score   int
	bowled  int
	wickets int
	active  [2]*Player
	striker int // index into active
	result  Result
}

// NewEngine validates cfg. The lineup is checked when the innings starts.
func NewEngine(cfg Config, lineup *Lineup, opts ...Option) (*Engine, error) {
	if cfg.Target < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTarget, cfg.Target)
	}
	if cfg.Overs <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOvers, cfg.Overs)
	}
	if lineup == nil {
		return nil, ErrEmptyLineup
	}
	e := &Engine{
		cfg:    cfg,
		lineup: lineup,
		rng:    DefaultRNG(),
		log:    zap.NewNop(),
		state:  StateNotStarted,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run plays the innings to a terminal state.
func (e *Engine) Run() (Result, error) {
	for !e.Done() {
		if _, err := e.Step(); err != nil {
			return Result{}, err
		}
	}
	return e.result, nil
}

// Step bowls exactly one ball, starting the innings first if needed.
func (e *Engine) Step() (BallEvent, error) {
	switch e.state {
	case StateNotStarted:
		if err := e.start(); err != nil {
			return BallEvent{}, err
		}
	case StateInProgress:
	default:
		return BallEvent{}, ErrInningsOver
	}

	if e.ball == 0 {
		e.obs.OverStarted(OverStart{
			Over:       e.over,
			OversLeft:  e.cfg.Overs - e.over,
			RunsNeeded: e.cfg.Target - e.score,
		})
	}

	batter := e.active[e.striker]
	if batter == nil || batter.IsOut() {
		return BallEvent{}, fmt.Errorf("%w: no batter on strike", ErrInvariant)
	}
	out, err := batter.FaceBall(e.rng)
	if err != nil {
		return BallEvent{}, fmt.Errorf("ball %d.%d: %w", e.over, e.ball+1, err)
	}
	e.ball++
	e.bowled++
	// a dismissal passes -1, which counts the ball but adds no runs
	batter.RecordBall(int(out))

	ev := BallEvent{Over: e.over, Ball: e.ball, Outcome: out}
	if out.IsOut() {
		if err := e.dismiss(batter, &ev); err != nil {
			return BallEvent{}, err
		}
	} else {
		e.score += out.Runs()
		if out.RotatesStrike() {
			e.rotateStrike()
		}
	}
	ev.Batter = batter.Card()

	if e.state == StateInProgress && e.score >= e.cfg.Target {
		e.finish(StateWon)
	}
	if e.state == StateInProgress && e.ball == BallsPerOver {
		e.rotateStrike()
		e.over++
		e.ball = 0
		if e.over == e.cfg.Overs {
			if e.score == e.cfg.Target-1 {
				e.finish(StateTied)
			} else {
				e.finish(StateOversComplete)
			}
		}
	}

	ev.Score = e.score
	ev.Wickets = e.wickets
	ev.State = e.state
	e.log.Debug("ball",
		zap.Int("over", ev.Over),
		zap.Int("ball", ev.Ball),
		zap.String("batter", ev.Batter.Name),
		zap.Stringer("outcome", out),
		zap.Int("score", e.score),
		zap.Int("wickets", e.wickets),
	)
	e.obs.BallBowled(ev)
	if e.state.Terminal() {
		e.obs.InningsEnded(e.result)
	}
	return ev, nil
}

func (e *Engine) start() error {
	if e.lineup.Exhausted() {
		return ErrEmptyLineup
	}
	first, err := e.lineup.NextBatsman()
	if err != nil {
		return err
	}
	e.active[0] = first
	// a one-player lineup bats alone
	if !e.lineup.Exhausted() {
		second, err := e.lineup.NextBatsman()
		if err != nil {
			return err
		}
		e.active[1] = second
	}
	e.striker = 0
	e.state = StateInProgress
	e.log.Info("innings started",
		zap.String("team", e.cfg.Team),
		zap.Int("target", e.cfg.Target),
		zap.Int("overs", e.cfg.Overs),
	)
	return nil
}

// dismiss retires the striker and, unless the lineup is exhausted, sends the
// next batsman into the same slot on strike.
func (e *Engine) dismiss(batter *Player, ev *BallEvent) error {
	batter.Dismiss()
	e.wickets++
	e.lineup.Archive(batter)
	if e.lineup.Exhausted() {
		e.finish(StateAllOut)
		return nil
	}
	next, err := e.lineup.NextBatsman()
	if err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrInvariant, batter.Name(), err)
	}
	e.active[e.striker] = next
	card := next.Card()
	ev.Incoming = &card
	return nil
}

func (e *Engine) rotateStrike() {
	if e.active[1-e.striker] != nil {
		e.striker = 1 - e.striker
	}
}

func (e *Engine) finish(s State) {
	e.state = s
	r := Result{
		Team:        e.cfg.Team,
		State:       s,
		Target:      e.cfg.Target,
		Overs:       e.cfg.Overs,
		Score:       e.score,
		Wickets:     e.wickets,
		BallsBowled: e.bowled,
		Batters:     e.lineup.Dismissed(),
	}
	for _, p := range e.active {
		if p != nil && !p.IsOut() {
			r.Batters = append(r.Batters, p.Card())
		}
	}
	if s == StateWon {
		r.WicketsInHand = e.lineup.Remaining() + e.notOutActive()
		r.BallsRemaining = (e.cfg.Overs-e.over-1)*BallsPerOver + (BallsPerOver - e.ball)
	} else {
		r.RunsShort = e.cfg.Target - e.score
	}
	e.result = r
	e.log.Info("innings ended",
		zap.String("team", e.cfg.Team),
		zap.String("state", string(s)),
		zap.Int("score", e.score),
		zap.Int("wickets", e.wickets),
		zap.Int("balls", e.bowled),
	)
}

func (e *Engine) notOutActive() int {
	n := 0
	for _, p := range e.active {
		if p != nil && !p.IsOut() {
			n++
		}
	}
	return n
}

func (e *Engine) Done() bool   { return e.state.Terminal() }
func (e *Engine) State() State { return e.state }
func (e *Engine) Over() int    { return e.over }
func (e *Engine) Ball() int    { return e.ball }
func (e *Engine) Score() int   { return e.score }
func (e *Engine) Wickets() int { return e.wickets }

// Striker returns the card of the batter on strike; false before the start.
func (e *Engine) Striker() (BatterCard, bool) { return cardOf(e.active[e.striker]) }

// NonStriker is also false for a one-player lineup.
func (e *Engine) NonStriker() (BatterCard, bool) { return cardOf(e.active[1-e.striker]) }

func cardOf(p *Player) (BatterCard, bool) {
	if p == nil {
		return BatterCard{}, false
	}
	return p.Card(), true
}

// Result is the zero value until Done.
func (e *Engine) Result() Result { return e.result }
