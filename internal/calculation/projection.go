package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PercentileRanges represents percentile ranges of a cross-sectional sample
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// Checkpoint is the band at the end of a projection year (or the final day)
type Checkpoint struct {
	Day   int             `json:"day"`
	Years decimal.Decimal `json:"years"`
	P10   decimal.Decimal `json:"p10"`
	P50   decimal.Decimal `json:"p50"`
	P90   decimal.Decimal `json:"p90"`
}

// ProjectionSummary condenses an ensemble into report-friendly figures
type ProjectionSummary struct {
	FinalPercentiles PercentileRanges `json:"final_percentiles"`
	MedianFinalValue decimal.Decimal  `json:"median_final_value"`
	DepletionRate    decimal.Decimal  `json:"depletion_rate"`
	FinalDispersion  decimal.Decimal  `json:"final_dispersion"`
	Checkpoints      []Checkpoint     `json:"checkpoints"`
}

// ProjectionResult is the output handed to rendering collaborators:
// the p10/p50/p90 band, the raw paths, and a summary.
type ProjectionResult struct {
	Params   SimulationParams `json:"params"`
	SeedMode SeedMode         `json:"seed_mode"`
	QuantileBand
	Paths   []Path            `json:"paths,omitempty"`
	Summary ProjectionSummary `json:"summary"`
}

// Ensemble returns the raw paths as an Ensemble.
func (r *ProjectionResult) Ensemble() *Ensemble { return &Ensemble{Paths: r.Paths} }

// WithoutPaths returns a shallow copy with the raw paths dropped.
func (r *ProjectionResult) WithoutPaths() *ProjectionResult {
	c := *r
	c.Paths = nil
	return &c
}

// ScenarioProjection is one named scenario's projection inside a report
type ScenarioProjection struct {
	Name         string            `json:"name"`
	StartDate    time.Time         `json:"start_date"`
	ReturnSource string            `json:"return_source"`
	Result       *ProjectionResult `json:"result"`
}

// ProjectionReport groups all scenario projections from one engine run
type ProjectionReport struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Scenarios   []*ScenarioProjection `json:"scenarios"`
}

// Project runs the simulation, aggregates the band and summarises the result.
func (s *NetWorthSimulator) Project(params SimulationParams) (*ProjectionResult, error) {
	ens, err := s.Simulate(params)
	if err != nil {
		return nil, err
	}
	band := AggregateAll(ens)
	return &ProjectionResult{
		Params:       params,
		SeedMode:     s.SeedMode,
		QuantileBand: band,
		Paths:        ens.Paths,
		Summary:      Summarize(ens, band),
	}, nil
}

// Summarize computes final-day percentiles, depletion rate, dispersion and
// yearly checkpoints.
func Summarize(ens *Ensemble, band QuantileBand) ProjectionSummary {
	days := ens.Days()
	if days == 0 {
		return ProjectionSummary{}
	}
	last := days - 1

	final := ens.Column(last, make([]float64, 0, ens.PathCount()))
	dispersion := CoefficientOfVariation(final)
	sort.Float64s(final)

	depleted := 0
	for _, p := range ens.Paths {
		for _, v := range p[1:] {
			if v == 0 {
				depleted++
				break
			}
		}
	}

	var checkpoints []Checkpoint
	for day := DaysPerYear; day <= last; day += DaysPerYear {
		checkpoints = append(checkpoints, newCheckpoint(band, day))
	}
	if last%DaysPerYear != 0 || last == 0 {
		checkpoints = append(checkpoints, newCheckpoint(band, last))
	}

	return ProjectionSummary{
		FinalPercentiles: PercentileRanges{
			P10: money(Percentile(final, 10)),
			P25: money(Percentile(final, 25)),
			P50: money(Percentile(final, 50)),
			P75: money(Percentile(final, 75)),
			P90: money(Percentile(final, 90)),
		},
		MedianFinalValue: money(band.P50[last]),
		DepletionRate: decimal.NewFromInt(int64(depleted)).
			Div(decimal.NewFromInt(int64(ens.PathCount()))).Round(4),
		FinalDispersion: decimal.NewFromFloat(dispersion).Round(4),
		Checkpoints:     checkpoints,
	}
}

func newCheckpoint(band QuantileBand, day int) Checkpoint {
	return Checkpoint{
		Day:   day,
		Years: decimal.NewFromInt(int64(day)).Div(decimal.NewFromInt(DaysPerYear)).Round(2),
		P10:   money(band.P10[day]),
		P50:   money(band.P50[day]),
		P90:   money(band.P90[day]),
	}
}

// money rounds a simulated float to cents.
func money(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(2) }
