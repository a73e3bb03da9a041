// Package match plays fixtures from the current roster on behalf of the
// HTTP, gRPC and CLI front ends.
package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xtding233/innings-sim/internal/commentary"
	"github.com/xtding233/innings-sim/internal/innings"
	"github.com/xtding233/innings-sim/internal/roster"
)

const maxTrials = 200000

var ErrTooManyTrials = fmt.Errorf("trials must be <= %d", maxTrials)

// Request overrides parts of the configured fixture. Nil fields keep the
// roster's values; a nil Seed picks a fresh one.
type Request struct {
	Target  *int
	Overs   *int
	Batting *string
	Lineup  []string
	Seed    *uint64
}

// PlayerInfo is a roster entry as served to clients.
type PlayerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Weights []int  `json:"weights"`
}

// Simulation is one played innings.
type Simulation struct {
	ID         string         `json:"id"`
	Seed       uint64         `json:"seed"`
	Fixture    roster.Fixture `json:"fixture"`
	Result     innings.Result `json:"result"`
	Commentary []string       `json:"commentary"`
}

// OddsReport is a Monte Carlo estimate for a fixture.
type OddsReport struct {
	Seed    uint64         `json:"seed"`
	Fixture roster.Fixture `json:"fixture"`
	Odds    innings.Odds   `json:"odds"`
}

// Service holds the active roster. Reload swaps it atomically for readers.
type Service struct {
	mu  sync.RWMutex
	raw roster.RawConfig
	reg *roster.Registry
	log *zap.Logger
}

func New(raw roster.RawConfig, reg *roster.Registry, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{raw: raw, reg: reg, log: log}
}

// Reload replaces the roster used by later requests.
func (s *Service) Reload(raw roster.RawConfig, reg *roster.Registry) {
	s.mu.Lock()
	s.raw, s.reg = raw, reg
	s.mu.Unlock()
	s.log.Info("roster reloaded", zap.String("version", raw.Version), zap.Int("players", reg.Len()))
}

func (s *Service) snapshot() (roster.RawConfig, *roster.Registry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw, s.reg
}

// Players lists the roster in id order.
func (s *Service) Players() []PlayerInfo {
	_, reg := s.snapshot()
	out := make([]PlayerInfo, 0, reg.Len())
	for _, id := range reg.IDs() {
		p, err := reg.Profile(id)
		if err != nil {
			continue
		}
		out = append(out, PlayerInfo{ID: p.ID(), Name: p.Name(), Weights: p.Weights()})
	}
	return out
}

// Match is a resolved fixture that has not been played yet.
type Match struct {
	ID      string
	Seed    uint64
	Fixture roster.Fixture

	reg *roster.Registry
	log *zap.Logger
}

// Prepare resolves req against the current roster and checks the lineup.
func (s *Service) Prepare(req Request) (*Match, error) {
	raw, reg := s.snapshot()
	fx, err := roster.Resolve(raw, roster.Overrides{
		Target:  req.Target,
		Overs:   req.Overs,
		Batting: req.Batting,
		Lineup:  req.Lineup,
	})
	if err != nil {
		return nil, err
	}
	if fx.Target < 0 {
		return nil, fmt.Errorf("%w: got %d", innings.ErrInvalidTarget, fx.Target)
	}
	if fx.Overs <= 0 {
		return nil, fmt.Errorf("%w: got %d", innings.ErrInvalidOvers, fx.Overs)
	}
	if _, err := reg.NewLineup(fx.Lineup); err != nil {
		return nil, err
	}
	m := &Match{
		ID:      uuid.NewString(),
		Seed:    newSeed(),
		Fixture: fx,
		reg:     reg,
	}
	if req.Seed != nil {
		m.Seed = *req.Seed
	}
	m.log = s.log.With(zap.String("innings", m.ID))
	return m, nil
}

// newSeed stays below 2^53 so the seed survives JSON clients.
func newSeed() uint64 { return rand.Uint64() >> 11 }

func (m *Match) config() innings.Config {
	return innings.Config{Team: m.Fixture.Batting, Target: m.Fixture.Target, Overs: m.Fixture.Overs}
}

// Play runs the innings, reporting progress to obs as it goes.
func (m *Match) Play(obs ...innings.Observer) (Simulation, error) {
	lineup, err := m.reg.NewLineup(m.Fixture.Lineup)
	if err != nil {
		return Simulation{}, err
	}
	tr := &commentary.Transcript{}
	opts := []innings.Option{
		innings.WithRandomSource(innings.NewSeededRNG(m.Seed)),
		innings.WithLogger(m.log),
		innings.WithObserver(tr),
	}
	for _, o := range obs {
		opts = append(opts, innings.WithObserver(o))
	}
	e, err := innings.NewEngine(m.config(), lineup, opts...)
	if err != nil {
		return Simulation{}, err
	}
	res, err := e.Run()
	if err != nil {
		return Simulation{}, err
	}
	return Simulation{
		ID:         m.ID,
		Seed:       m.Seed,
		Fixture:    m.Fixture,
		Result:     res,
		Commentary: tr.Lines,
	}, nil
}

// Simulate prepares and plays req in one call.
func (s *Service) Simulate(req Request, obs ...innings.Observer) (Simulation, error) {
	m, err := s.Prepare(req)
	if err != nil {
		return Simulation{}, err
	}
	return m.Play(obs...)
}

// Odds estimates the fixture's outcome distribution over trials innings.
func (s *Service) Odds(ctx context.Context, req Request, trials, workers int) (OddsReport, error) {
	if trials > maxTrials {
		return OddsReport{}, ErrTooManyTrials
	}
	m, err := s.Prepare(req)
	if err != nil {
		return OddsReport{}, err
	}
	odds, err := innings.RunMonteCarlo(ctx, innings.OddsParams{
		Config:  m.config(),
		Lineup:  m.Fixture.Lineup,
		Source:  m.reg,
		Trials:  trials,
		Seed:    m.Seed,
		Workers: workers,
	})
	if err != nil {
		return OddsReport{}, err
	}
	m.log.Info("odds estimated",
		zap.Int("trials", trials),
		zap.Float64("win_rate", odds.WinRate),
	)
	return OddsReport{Seed: m.Seed, Fixture: m.Fixture, Odds: odds}, nil
}

// IsClientError reports whether err comes from a bad request rather than
// a server fault.
func IsClientError(err error) bool {
	for _, target := range []error{
		innings.ErrInvalidTarget,
		innings.ErrInvalidOvers,
		innings.ErrUnknownPlayer,
		innings.ErrEmptyLineup,
		innings.ErrNoTrials,
		roster.ErrNoTarget,
		ErrTooManyTrials,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
