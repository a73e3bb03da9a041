package innings

import "fmt"

// Lineup is the batting order still to come plus the cards of dismissed
// batters. Insertion order is batting order; an id is accepted once.
type Lineup struct {
	source    ProfileSource
	pending   []string
	seen      map[string]struct{}
	dismissed []BatterCard
}

// NewLineup resolves ids through source when batters are sent in. A nil
// source knows no players, so NextBatsman reports ErrUnknownPlayer.
func NewLineup(source ProfileSource) *Lineup {
	if source == nil {
		source = Profiles{}
	}
	return &Lineup{
		source: source,
		seen:   make(map[string]struct{}),
	}
}

// Enqueue appends id to the batting order. Repeats are ignored.
// Call only before the innings starts.
func (l *Lineup) Enqueue(id string) {
	if _, ok := l.seen[id]; ok {
		return
	}
	l.seen[id] = struct{}{}
	l.pending = append(l.pending, id)
}

// NextBatsman sends in the head of the batting order.
func (l *Lineup) NextBatsman() (*Player, error) {
	if len(l.pending) == 0 {
		return nil, ErrNoPlayersAvailable
	}
	id := l.pending[0]
	profile, err := l.source.Profile(id)
	if err != nil {
		return nil, fmt.Errorf("next batsman: %w", err)
	}
	l.pending = l.pending[1:]
	return NewPlayer(profile), nil
}

// Archive records a dismissed player's final card.
func (l *Lineup) Archive(p *Player) {
	l.dismissed = append(l.dismissed, p.Card())
}

func (l *Lineup) Remaining() int  { return len(l.pending) }
func (l *Lineup) Exhausted() bool { return len(l.pending) == 0 }

// Pending returns the ids yet to bat, in order.
func (l *Lineup) Pending() []string { return append([]string(nil), l.pending...) }

// Dismissed returns the dismissed cards in dismissal order.
func (l *Lineup) Dismissed() []BatterCard {
	return append([]BatterCard(nil), l.dismissed...)
}
