package report

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one feature restricted to one row subset of one dataset.
// Values holds the present values, sorted ascending.
type Sample struct {
	Values  []float64
	Missing int
}

func (s Sample) Len() int { return len(s.Values) + s.Missing }

// Summary holds the descriptive statistics of a Sample. Statistics that
// are undefined for the sample (an empty subset, too few values) are NaN.
type Summary struct {
	PctMissing float64
	Median     float64
	Quantiles  []float64
	Min        float64
	Max        float64
	Mean       float64
	Stdev      float64
	Skew       float64
	Kurtosis   float64
	// FvsTKS is the false-vs-true KS statistic; only set for the "all" subset.
	FvsTKS    float64
	HasFvsTKS bool
}

// Describe computes the summary of s. Stdev is the sample standard
// deviation; Skew and Kurtosis are the bias-corrected sample skewness and
// excess kurtosis, and 0 for constant samples.
func Describe(s Sample, quantiles []float64) Summary {
	nan := math.NaN()
	sum := Summary{
		PctMissing: nan, Median: nan, Min: nan, Max: nan,
		Mean: nan, Stdev: nan, Skew: nan, Kurtosis: nan, FvsTKS: nan,
		Quantiles: make([]float64, len(quantiles)),
	}
	for i := range sum.Quantiles {
		sum.Quantiles[i] = nan
	}
	if s.Len() == 0 {
		return sum
	}
	sum.PctMissing = float64(s.Missing) * 100 / float64(s.Len())

	x := s.Values
	n := len(x)
	if n == 0 {
		return sum
	}
	sum.Median = quantile(x, 0.5)
	for i, q := range quantiles {
		sum.Quantiles[i] = quantile(x, q)
	}
	sum.Min = floats.Min(x)
	sum.Max = floats.Max(x)
	sum.Mean = stat.Mean(x, nil)
	if n < 2 {
		return sum
	}
	sum.Stdev = stat.StdDev(x, nil)
	constant := sum.Min == sum.Max
	if n >= 3 {
		sum.Skew = 0
		if !constant {
			sum.Skew = stat.Skew(x, nil)
		}
	}
	if n >= 4 {
		sum.Kurtosis = 0
		if !constant {
			sum.Kurtosis = stat.ExKurtosis(x, nil)
		}
	}
	return sum
}

// quantile interpolates linearly between the closest ranks of the sorted
// sample x, at h = (n-1)p.
func quantile(x []float64, p float64) float64 {
	n := len(x)
	if n == 1 {
		return x[0]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return x[n-1]
	}
	return x[i] + (h-lo)*(x[i+1]-x[i])
}

// KS is the two-sample Kolmogorov-Smirnov statistic of a and b, NaN when
// either has no values.
func KS(a, b Sample) float64 {
	if len(a.Values) == 0 || len(b.Values) == 0 {
		return math.NaN()
	}
	return stat.KolmogorovSmirnov(a.Values, nil, b.Values, nil)
}

// sortedSample builds a Sample from raw values, NaN meaning missing.
func sortedSample(raw []float64) Sample {
	s := Sample{Values: make([]float64, 0, len(raw))}
	for _, v := range raw {
		if math.IsNaN(v) {
			s.Missing++
			continue
		}
		s.Values = append(s.Values, v)
	}
	sort.Float64s(s.Values)
	return s
}

// percentLabel renders a quantile as a percentile label: 0.0001 is "0.01 %ile".
func percentLabel(q float64) string {
	pct := math.Round(q*100*1e6) / 1e6
	return strconv.FormatFloat(pct, 'f', -1, 64) + " %ile"
}
