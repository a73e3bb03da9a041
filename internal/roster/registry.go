package roster

import (
	"errors"
	"fmt"
	"slices"

	"github.com/xtding233/innings-sim/internal/innings"
)

// Registry maps player ids to profiles. It is built once and only read
// afterwards, so it may be shared by concurrent innings.
type Registry struct {
	profiles innings.Profiles
	ids      []string
}

// NewRegistry builds profiles for every player; all bad entries are reported.
func NewRegistry(players map[string]PlayerConfig) (*Registry, error) {
	r := &Registry{profiles: make(innings.Profiles, len(players))}
	var errs []error
	for id, pc := range players {
		p, err := innings.NewProfile(id, pc.Name, pc.Weights)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.profiles[id] = p
		r.ids = append(r.ids, id)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	slices.Sort(r.ids)
	return r, nil
}

// Profile resolves id, wrapping innings.ErrUnknownPlayer on a miss.
func (r *Registry) Profile(id string) (*innings.Profile, error) {
	return r.profiles.Profile(id)
}

// IDs returns all player ids, sorted.
func (r *Registry) IDs() []string { return slices.Clone(r.ids) }

func (r *Registry) Len() int { return len(r.ids) }

// NewLineup checks every id up front and enqueues them in order.
func (r *Registry) NewLineup(ids []string) (*innings.Lineup, error) {
	if len(ids) == 0 {
		return nil, innings.ErrEmptyLineup
	}
	l := innings.NewLineup(r)
	for _, id := range ids {
		if _, err := r.Profile(id); err != nil {
			return nil, fmt.Errorf("lineup: %w", err)
		}
		l.Enqueue(id)
	}
	return l, nil
}
