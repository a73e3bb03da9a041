package innings

import (
	"fmt"
	"sort"
)

// Sample draws one outcome with probability weights[i]/sum(weights).
// - r is uniform in [1, total]
// - the pick is the smallest i with cumulative[i] >= r, so zero weights never win
// rng == nil => DefaultRNG()

func Sample[T any](weights []int, outcomes []T, rng RandomSource) (T, error) {
	var zero T
	total, err := validateWeights(weights, len(outcomes))
	if err != nil {
		return zero, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	cum := make([]int, len(weights))
	acc := 0
	for i, w := range weights {
		acc += w
		cum[i] = acc
	}

	r := 1 + rng.IntN(total)
	i := findCeil(cum, r)
	if i < 0 {
		return zero, fmt.Errorf("%w: r=%d total=%d", ErrSampling, r, total)
	}
	return outcomes[i], nil
}

// findCeil returns the index of the smallest cum value >= r, or -1.
func findCeil(cum []int, r int) int {
	i := sort.SearchInts(cum, r)
	if i >= len(cum) {
		return -1
	}
	return i
}
