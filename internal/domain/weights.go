package domain

import "math"

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp100 clamps a progress value to the [0, 100] range.
func Clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// WeightedAverage combines child progress values into a parent average using
// the given weights. When the total weight is zero it falls back to a plain
// arithmetic mean over the same items, so a tree whose weights were never
// filled in still rolls up sensibly. The result is clamped to [0, 100] and
// rounded to two decimals.
func WeightedAverage[T any](items []T, weightOf func(T) float64, valueOf func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	var totalWeight, weightedSum, plainSum float64
	for _, it := range items {
		w := weightOf(it)
		v := valueOf(it)
		totalWeight += w
		weightedSum += w * v
		plainSum += v
	}
	var avg float64
	if totalWeight > 0 {
		avg = weightedSum / totalWeight
	} else {
		avg = plainSum / float64(len(items))
	}
	return Round2(Clamp100(avg))
}
