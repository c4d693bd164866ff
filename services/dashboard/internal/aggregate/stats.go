package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the non-missing values of one numeric column. Every
// statistic is NaN when no value is present.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Describe computes Stats over values, skipping NaN.
func Describe(values []float64) Stats {
	present := dropMissing(values)
	if len(present) == 0 {
		nan := math.NaN()
		return Stats{Mean: nan, Median: nan, Min: nan, Max: nan}
	}

	sort.Float64s(present)
	return Stats{
		Count:  len(present),
		Mean:   stat.Mean(present, nil),
		Median: median(present),
		Min:    present[0],
		Max:    present[len(present)-1],
	}
}

// Mean is the mean of the non-missing values, or NaN.
func Mean(values []float64) float64 {
	present := dropMissing(values)
	if len(present) == 0 {
		return math.NaN()
	}
	return stat.Mean(present, nil)
}

// Correlation is the Pearson correlation of the pairs where both values are
// present, or NaN with fewer than two pairs.
func Correlation(x, y []float64) float64 {
	var xs, ys []float64
	for i := range x {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// median of sorted, non-empty values; even counts average the middle pair.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func dropMissing(values []float64) []float64 {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	return present
}

// descending orders a before b when a is larger; NaN goes last.
func descending(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	default:
		return a > b
	}
}
