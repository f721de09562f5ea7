package stats

import (
	"math"
	"sort"
)

// Percentile computes the p-th percentile of samples by linear interpolation
// between adjacent order statistics: rank k = (n-1) * p/100, interpolating
// between floor(k) and ceil(k). The input is not mutated. The second return
// is false when there are no samples.
func Percentile(samples []float64, p float64) (float64, bool) {
	n := len(samples)
	if n == 0 {
		return math.NaN(), false
	}
	if n == 1 {
		return samples[0], true
	}

	s := make([]float64, n)
	copy(s, samples)
	sort.Float64s(s)

	k := float64(n-1) * p / 100.0
	f := math.Floor(k)
	c := math.Ceil(k)
	if f == c {
		return s[int(k)], true
	}
	return s[int(f)] + (s[int(c)]-s[int(f)])*(k-f), true
}

// Mean returns the arithmetic mean of samples, or ok=false when empty.
func Mean(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return math.NaN(), false
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples)), true
}
