package solver

import "golang.org/x/exp/constraints"

// minBy returns the first element with the smallest key, along with the key.
// Ties keep the earliest element so results follow slice order.
func minBy[T any, K constraints.Ordered](items []T, key func(T) K) (T, K) {
	var best T
	var bestKey K
	for i, item := range items {
		k := key(item)
		if i == 0 || k < bestKey {
			best, bestKey = item, k
		}
	}
	return best, bestKey
}
