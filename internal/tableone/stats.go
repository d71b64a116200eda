package tableone

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// meanSD returns the mean and sample standard deviation (n-1). The SD of a
// single value is NaN.
func meanSD(xs []float64) (mean, sd float64) {
	switch len(xs) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return xs[0], math.NaN()
	}
	return stat.MeanStdDev(xs, nil)
}

// quartiles returns q1, median and q3 of xs. xs is sorted in place.
func quartiles(xs []float64) (q1, median, q3 float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	sort.Float64s(xs)
	return quantile(xs, 0.25), quantile(xs, 0.5), quantile(xs, 0.75)
}

// quantile interpolates linearly between closest ranks (Hyndman-Fan type 7).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
