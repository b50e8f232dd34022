package calculation

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Band percentile levels.
const (
	LowPercentile    = 10.0
	MedianPercentile = 50.0
	HighPercentile   = 90.0
)

// QuantileBand holds the p10/p50/p90 envelope of an ensemble, one value per day.
type QuantileBand struct {
	P10 []float64 `json:"p10"`
	P50 []float64 `json:"p50"`
	P90 []float64 `json:"p90"`
}

// Days returns the length of the band.
func (b QuantileBand) Days() int { return len(b.P50) }

// DayQuantiles is the band evaluated at a single day.
type DayQuantiles struct {
	Day int     `json:"day"`
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// Percentile returns the p-th percentile (0..100) of an ascending sample using
// linear interpolation between order statistics (the R-7 method). p is clamped
// to [0, 100] and the upper order statistic to the last element. An empty
// sample or a NaN p yields NaN.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	p = max(0, min(p, 100))
	idx := (p / 100) * float64(n-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if upper >= n {
		upper = n - 1
	}
	if lower > upper {
		lower = upper
	}
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Aggregate computes the band at a single day.
func Aggregate(ens *Ensemble, day int) (DayQuantiles, error) {
	if ens == nil || ens.PathCount() == 0 {
		return DayQuantiles{}, ErrEmptyEnsemble
	}
	if day < 0 || day >= ens.Days() {
		return DayQuantiles{}, fmt.Errorf("%w: %d not in [0, %d)", ErrDayOutOfRange, day, ens.Days())
	}
	sample := ens.Column(day, make([]float64, 0, ens.PathCount()))
	sort.Float64s(sample)
	return DayQuantiles{
		Day: day,
		P10: Percentile(sample, LowPercentile),
		P50: Percentile(sample, MedianPercentile),
		P90: Percentile(sample, HighPercentile),
	}, nil
}

// AggregateAll computes the p10/p50/p90 band for every day of the ensemble.
func AggregateAll(ens *Ensemble) QuantileBand {
	levels := AggregateLevels(ens, LowPercentile, MedianPercentile, HighPercentile)
	return QuantileBand{P10: levels[0], P50: levels[1], P90: levels[2]}
}

// AggregateLevels computes arbitrary percentile levels for every day. The
// result is indexed [level][day]. Days are independent, so they are spread
// over GOMAXPROCS workers.
func AggregateLevels(ens *Ensemble, levels ...float64) [][]float64 {
	days := 0
	if ens != nil {
		days = ens.Days()
	}
	out := make([][]float64, len(levels))
	for i := range out {
		out[i] = make([]float64, days)
	}
	if days == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > days {
		workers = days
	}
	chunk := (days + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < days; start += chunk {
		start := start
		end := min(start+chunk, days)
		g.Go(func() error {
			sample := make([]float64, 0, ens.PathCount())
			for day := start; day < end; day++ {
				sample = ens.Column(day, sample)
				sort.Float64s(sample)
				for i, p := range levels {
					out[i][day] = Percentile(sample, p)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
