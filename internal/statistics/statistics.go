// Package statistics provides the summaries used to sanity-check generator
// output: running moments, order statistics and chi-square goodness of fit.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Summary accumulates samples for mean, variance and order statistics.
type Summary struct {
	Count int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
	Min   float64
	Max   float64

	// Values is only populated when KeepValues is set, since median and
	// percentiles need the full sample.
	Values     []float64
	KeepValues bool
}

// Add incorporates one sample.
func (s *Summary) Add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Count++
	s.Sum += v
	s.SumSq += v * v
	if s.KeepValues {
		s.Values = append(s.Values, v)
	}
}

// Merge folds other into s. Values are merged only when both keep them.
func (s *Summary) Merge(other *Summary) {
	if other.Count == 0 {
		return
	}
	if s.Count == 0 || other.Min < s.Min {
		s.Min = other.Min
	}
	if s.Count == 0 || other.Max > s.Max {
		s.Max = other.Max
	}
	s.Count += other.Count
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	if s.KeepValues && other.KeepValues {
		s.Values = append(s.Values, other.Values...)
	}
}

// Mean returns the arithmetic mean of the samples
func (s *Summary) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance
func (s *Summary) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Count)*mean*mean) / float64(s.Count-1)
}

// StdDev returns the sample standard deviation
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Summary) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median of the kept values
func (s *Summary) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0) of the
// kept values, interpolating between neighbours.
func (s *Summary) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accumulated moments are internally consistent.
func (s *Summary) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("negative sample count: %d", s.Count)
	}
	if s.KeepValues && len(s.Values) != s.Count {
		return fmt.Errorf("kept %d values for %d samples", len(s.Values), s.Count)
	}
	if s.Count > 0 && (s.Mean() < s.Min-1e-9 || s.Mean() > s.Max+1e-9) {
		return fmt.Errorf("mean %.6f outside [%.6f, %.6f]", s.Mean(), s.Min, s.Max)
	}
	return nil
}
