package innings

import "errors"

var (
	ErrConfiguration      = errors.New("invalid scoring weights")
	ErrSampling           = errors.New("no outcome found for random draw")
	ErrNoPlayersAvailable = errors.New("no players available")
	ErrEmptyLineup        = errors.New("batting lineup has no players")
	ErrInvalidTarget      = errors.New("target score must be >= 0")
	ErrInvalidOvers       = errors.New("overs must be > 0")
	ErrUnknownPlayer      = errors.New("unknown player id")
	ErrInningsOver        = errors.New("innings already completed")
	ErrInvariant          = errors.New("innings invariant violated")
)
