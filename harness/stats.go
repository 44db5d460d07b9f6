package harness

import "math"

// MeanStd returns the arithmetic mean and the population standard deviation.
// Both are 0 for an empty slice.
func MeanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)))
}

// Amdahl returns the speedup predicted for a fixed-size problem with
// parallel fraction p on n workers: 1 / ((1-p) + p/n).
func Amdahl(p float64, n int) float64 {
	return 1 / ((1 - p) + p/float64(n))
}

// Gustafson returns the scaled speedup predicted for a problem that grows
// with the worker count: n - (1-p)(n-1).
func Gustafson(p float64, n int) float64 {
	return float64(n) - (1-p)*float64(n-1)
}
