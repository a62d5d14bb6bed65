package apportion

import (
	"sort"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

// Weights returns one weight per gap. Gap i follows meetings[i]; the last
// meeting has no gap. Weights are floored at 1.
func Weights(meetings []domain.Meeting) []int {
	if len(meetings) <= 1 {
		return []int{}
	}

	weights := make([]int, len(meetings)-1)
	for i := range weights {
		weights[i] = max(1, meetings[i].Hours)
	}
	return weights
}

// LargestRemainder splits units across weights with the Hamilton method.
//
// Every ideal share units*w/W has the same denominator W, so the fractional
// parts are compared through their integer numerators (units*w mod W) and no
// floating point is involved. Leftover units go to the largest remainders;
// ties prefer the larger weight, then the lower index.
func LargestRemainder(units int, weights []int) []int {
	result := make([]int, len(weights))
	if len(weights) == 0 || units <= 0 {
		return result
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight <= 0 {
		return result
	}

	type remainder struct {
		index     int
		weight    int
		numerator int
	}
	remainders := make([]remainder, len(weights))

	allocated := 0
	for i, w := range weights {
		share := units * w
		result[i] = share / totalWeight
		allocated += result[i]
		remainders[i] = remainder{
			index:     i,
			weight:    w,
			numerator: share % totalWeight,
		}
	}

	sort.Slice(remainders, func(i, j int) bool {
		a, b := remainders[i], remainders[j]
		if a.numerator != b.numerator {
			return a.numerator > b.numerator
		}
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		return a.index < b.index
	})

	// Always fewer than len(weights).
	toDistribute := units - allocated
	for i := 0; i < toDistribute && i < len(remainders); i++ {
		result[remainders[i].index]++
	}

	return result
}
