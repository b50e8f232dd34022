package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/pkg/dateutil"
)

// ErrPathsUnavailable is returned when raw paths were dropped from the report.
var ErrPathsUnavailable = errors.New("report has no raw paths; enable include_paths")

// CSVBandsFormatter writes the p10/p50/p90 band, one row per scenario and day.
type CSVBandsFormatter struct{}

func (c CSVBandsFormatter) Name() string { return "csv" }

func (c CSVBandsFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Day", "Date", "P10", "P50", "P90"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		band := sc.Result.QuantileBand
		for day := 0; day < band.Days(); day++ {
			row := []string{
				sc.Name,
				strconv.Itoa(day),
				dateutil.DayLabel(sc.StartDate, day),
				formatFloat(band.P10[day]),
				formatFloat(band.P50[day]),
				formatFloat(band.P90[day]),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVPathsFormatter writes every raw path in wide format: one row per scenario
// and day, one column per path.
type CSVPathsFormatter struct{}

func (c CSVPathsFormatter) Name() string { return "paths-csv" }

func (c CSVPathsFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	width := 0
	for _, sc := range report.Scenarios {
		if len(sc.Result.Paths) == 0 {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, ErrPathsUnavailable)
		}
		width = max(width, len(sc.Result.Paths))
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Day"}
	for i := 0; i < width; i++ {
		header = append(header, "Path"+strconv.Itoa(i))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sc := range report.Scenarios {
		ens := sc.Result.Ensemble()
		column := make([]float64, 0, ens.PathCount())
		for day := 0; day < ens.Days(); day++ {
			column = ens.Column(day, column)
			row := make([]string, 0, 2+len(column))
			row = append(row, sc.Name, strconv.Itoa(day))
			for _, v := range column {
				row = append(row, formatFloat(v))
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
