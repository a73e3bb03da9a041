package innings

import "fmt"

func validateWeights(weights []int, n int) (int, error) {
	if len(weights) != n {
		return 0, fmt.Errorf("%w: %d weights for %d outcomes", ErrConfiguration, len(weights), n)
	}
	total := 0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("%w: weight[%d]=%d is negative", ErrConfiguration, i, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: weights sum to %d", ErrConfiguration, total)
	}
	return total, nil
}
