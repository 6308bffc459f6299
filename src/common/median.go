package common

import (
	"sort"
)

// Percentile returns the p-th percentile (0 <= p <= 100) of a slice of
// samples using the nearest-rank method. It returns 0 for an empty slice.
func Percentile(input []int, p float64) int {
	if len(input) == 0 {
		return 0
	}

	// sort a copy so callers keep their sampling order
	s := make([]int, len(input))
	copy(s, input)
	sort.Ints(s)

	switch {
	case p <= 0:
		return s[0]
	case p >= 100:
		return s[len(s)-1]
	}

	rank := int(p/100*float64(len(s))+0.5) - 1
	if rank < 0 {
		rank = 0
	}
	return s[rank]
}

// Median gets the median number in a slice of samples. For an even number of
// samples it averages the two middle ones.
func Median(input []int) int {
	s := make([]int, len(input))
	copy(s, input)
	sort.Ints(s)

	l := len(s)
	switch {
	case l == 0:
		return 0
	case l%2 == 0:
		return (s[l/2-1] + s[l/2]) / 2
	default:
		return s[l/2]
	}
}
