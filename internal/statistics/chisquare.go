package statistics

import (
	"fmt"
	"math"
)

// Z-scores for the upper tail probabilities used by callers.
const (
	Z999 = 3.090232 // p = 0.001
	Z99  = 2.326348 // p = 0.01
)

// Histogram counts integer observations in [0, len(Counts)).
type Histogram struct {
	Counts []int
	Total  int
}

// NewHistogram returns a histogram with the given number of bins.
func NewHistogram(bins int) *Histogram {
	return &Histogram{Counts: make([]int, bins)}
}

// Observe records v. Values outside the bin range are an error.
func (h *Histogram) Observe(v int64) error {
	if v < 0 || v >= int64(len(h.Counts)) {
		return fmt.Errorf("value %d outside [0, %d)", v, len(h.Counts))
	}
	h.Counts[v]++
	h.Total++
	return nil
}

// ChiSquareResult is the outcome of a goodness-of-fit test against the uniform
// distribution.
type ChiSquareResult struct {
	Statistic        float64
	DegreesOfFreedom int
	Critical         float64
}

// Passed reports whether the statistic is below the critical value.
func (r ChiSquareResult) Passed() bool {
	return r.Statistic < r.Critical
}

// ChiSquareUniform tests the histogram against equal expected counts per bin,
// with the critical value taken at the upper-tail z-score z.
func (h *Histogram) ChiSquareUniform(z float64) (ChiSquareResult, error) {
	bins := len(h.Counts)
	if bins < 2 {
		return ChiSquareResult{}, fmt.Errorf("need at least 2 bins, got %d", bins)
	}
	if h.Total == 0 {
		return ChiSquareResult{}, fmt.Errorf("histogram is empty")
	}

	expected := float64(h.Total) / float64(bins)
	var stat float64
	for _, c := range h.Counts {
		d := float64(c) - expected
		stat += d * d / expected
	}

	df := bins - 1
	return ChiSquareResult{
		Statistic:        stat,
		DegreesOfFreedom: df,
		Critical:         ChiSquareCritical(df, z),
	}, nil
}

// ChiSquareCritical approximates the chi-square quantile with df degrees of
// freedom at upper-tail z-score z using the Wilson-Hilferty transform.
func ChiSquareCritical(df int, z float64) float64 {
	k := float64(df)
	a := 2 / (9 * k)
	return k * math.Pow(1-a+z*math.Sqrt(a), 3)
}
