package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/vicanso/go-charts/v2"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/pkg/dateutil"
)

// ErrChartTooShort is returned when a band has fewer than two days to plot.
var ErrChartTooShort = errors.New("not enough days to chart")

const (
	// maxChartPoints bounds the samples plotted per line.
	maxChartPoints = 120
	chartWidth     = 1000
	chartHeight    = 600
)

// RenderBandChart draws the p10/p50/p90 lines of band as a PNG.
func RenderBandChart(title string, band calculation.QuantileBand, start time.Time) ([]byte, error) {
	if band.Days() < 2 {
		return nil, ErrChartTooShort
	}

	idx := sampleDays(band.Days(), maxChartPoints)
	labels := make([]string, len(idx))
	p10 := make([]float64, len(idx))
	p50 := make([]float64, len(idx))
	p90 := make([]float64, len(idx))
	for i, day := range idx {
		labels[i] = dateutil.DayLabel(start, day)
		p10[i] = band.P10[day]
		p50[i] = band.P50[day]
		p90[i] = band.P90[day]
	}

	yMin, yMax := p10[0], p90[0]
	for i := range idx {
		yMin = min(yMin, p10[i])
		yMax = max(yMax, p90[i])
	}
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad
	if yMax <= yMin {
		yMax = yMin + 1
	}

	painter, err := charts.LineRender([][]float64{p10, p50, p90},
		charts.TitleTextOptionFunc(title, fmt.Sprintf("%d days • p10 / p50 / p90", band.Days()-1)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 6}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{"P10", "P50", "P90"}, Top: charts.PositionTop}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return painter.Bytes()
}

// sampleDays picks at most limit evenly spaced day indices out of n,
// always keeping the first and last day.
func sampleDays(n, limit int) []int {
	if n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, limit)
	step := float64(n-1) / float64(limit-1)
	for i := range idx {
		idx[i] = int(float64(i)*step + 0.5)
	}
	idx[limit-1] = n - 1
	return idx
}

// PNGFormatter charts one scenario of the report.
type PNGFormatter struct {
	// Scenario selects the scenario by name; empty means the first one.
	Scenario string
}

func (p PNGFormatter) Name() string { return "png" }

func (p PNGFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	if len(report.Scenarios) == 0 {
		return nil, fmt.Errorf("report has no scenarios")
	}
	sc := report.Scenarios[0]
	if p.Scenario != "" {
		sc = nil
		for _, candidate := range report.Scenarios {
			if candidate.Name == p.Scenario {
				sc = candidate
				break
			}
		}
		if sc == nil {
			return nil, fmt.Errorf("scenario %q not found", p.Scenario)
		}
	}
	return RenderBandChart(sc.Name, sc.Result.QuantileBand, sc.StartDate)
}
