package util

import (
	"golang.org/x/exp/constraints"
)

func Min[A constraints.Ordered](a A, b A) A {
	if a > b {
		return b
	}
	return a
}

func Max[A constraints.Ordered](a A, b A) A {
	if a < b {
		return b
	}
	return a
}

func Clamp[A constraints.Ordered](v A, lo A, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize rescales v into [0,1] over [lo,hi], saturating at the
// boundaries. A zero-width or inverted range yields the midpoint 0.5 so
// callers never divide by zero on flat signals.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return Clamp((v-lo)/(hi-lo), 0, 1)
}
