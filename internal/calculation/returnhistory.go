package calculation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// HistoricalDataPoint represents a single year's annual return
type HistoricalDataPoint struct {
	Year   int             `json:"year"`
	Return decimal.Decimal `json:"return"`
}

// HistoricalStatistics provides statistical summary of the dataset
type HistoricalStatistics struct {
	Mean         decimal.Decimal `json:"mean"`
	Median       decimal.Decimal `json:"median"`
	StdDev       decimal.Decimal `json:"std_dev"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Count        int             `json:"count"`
	MissingYears []int           `json:"missing_years"`
}

// ReturnHistory is a series of historical annual returns used to calibrate
// market assumptions
type ReturnHistory struct {
	Source     string                `json:"source"`
	DataPoints []HistoricalDataPoint `json:"data_points"`
	MinYear    int                   `json:"min_year"`
	MaxYear    int                   `json:"max_year"`
	Statistics HistoricalStatistics  `json:"statistics"`
}

// LoadReturnHistory reads a two-column "Year,Return" CSV file.
func LoadReturnHistory(path string) (*ReturnHistory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	history, err := ParseReturnHistory(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	history.Source = path
	return history, nil
}

// ParseReturnHistory parses return history CSV data. Rows with an invalid
// year or return are skipped.
func ParseReturnHistory(r io.Reader) (*ReturnHistory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []HistoricalDataPoint
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			continue
		}
		points = append(points, HistoricalDataPoint{Year: year, Return: value})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points found")
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	return &ReturnHistory{
		DataPoints: points,
		MinYear:    points[0].Year,
		MaxYear:    points[len(points)-1].Year,
		Statistics: calculateStatistics(points),
	}, nil
}

// calculateStatistics expects points sorted by year.
func calculateStatistics(points []HistoricalDataPoint) HistoricalStatistics {
	values := make([]decimal.Decimal, len(points))
	for i, p := range points {
		values[i] = p.Return
	}

	mean := decimal.Avg(values[0], values[1:]...)

	var varianceSum decimal.Decimal
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(decimal.NewFromInt(int64(len(values))))
	stdDev := decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))

	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
	}

	var missing []int
	seen := make(map[int]bool, len(points))
	for _, p := range points {
		seen[p.Year] = true
	}
	for year := points[0].Year; year <= points[len(points)-1].Year; year++ {
		if !seen[year] {
			missing = append(missing, year)
		}
	}

	return HistoricalStatistics{
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		Min:          sorted[0],
		Max:          sorted[n-1],
		Count:        n,
		MissingYears: missing,
	}
}

// GetReturn returns the recorded return for year.
func (h *ReturnHistory) GetReturn(year int) (decimal.Decimal, error) {
	for _, p := range h.DataPoints {
		if p.Year == year {
			return p.Return, nil
		}
	}
	return decimal.Zero, fmt.Errorf("no return recorded for year %d", year)
}
