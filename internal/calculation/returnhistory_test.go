package calculation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnHistory(t *testing.T) {
	path, err := createTestHistoryFile(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test data file: %v", err)
	}

	history, err := LoadReturnHistory(path)
	require.NoError(t, err)

	assert.Equal(t, path, history.Source)
	assert.Equal(t, 2015, history.MinYear)
	assert.Equal(t, 2020, history.MaxYear)
	require.Len(t, history.DataPoints, 5)
	for i := 1; i < len(history.DataPoints); i++ {
		assert.Less(t, history.DataPoints[i-1].Year, history.DataPoints[i].Year, "data points must be sorted by year")
	}
}

func TestReturnHistoryStatistics(t *testing.T) {
	path, err := createTestHistoryFile(t.TempDir())
	require.NoError(t, err)
	history, err := LoadReturnHistory(path)
	require.NoError(t, err)

	stats := history.Statistics
	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, "0.08", stats.Mean.String())
	assert.Equal(t, "0.1", stats.Median.String())
	assert.Equal(t, "-0.05", stats.Min.String())
	assert.Equal(t, "0.2", stats.Max.String())
	assert.Equal(t, []int{2018}, stats.MissingYears)

	// Population variance of the five returns is 0.00716.
	assert.InDelta(t, 0.084617, stats.StdDev.InexactFloat64(), 1e-6)
}

func TestParseReturnHistorySkipsBadRows(t *testing.T) {
	data := "Year,Return\n2001,0.05\nabc,0.1\n2002,n/a\n2003\n2004,0.07\n"
	history, err := ParseReturnHistory(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, history.DataPoints, 2)
	assert.Equal(t, 2001, history.DataPoints[0].Year)
	assert.Equal(t, 2004, history.DataPoints[1].Year)
	assert.Equal(t, []int{2002, 2003}, history.Statistics.MissingYears)
	assert.Equal(t, "0.06", history.Statistics.Median.String())
}

func TestParseReturnHistoryErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"single column header", "Year\n2001\n"},
		{"no valid rows", "Year,Return\nfoo,bar\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReturnHistory(strings.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadReturnHistoryMissingFile(t *testing.T) {
	_, err := LoadReturnHistory(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetReturn(t *testing.T) {
	path, err := createTestHistoryFile(t.TempDir())
	require.NoError(t, err)
	history, err := LoadReturnHistory(path)
	require.NoError(t, err)

	r, err := history.GetReturn(2016)
	require.NoError(t, err)
	assert.True(t, r.Equal(decimal.NewFromFloat(-0.05)))

	_, err = history.GetReturn(2018)
	assert.Error(t, err)
}

// createTestHistoryFile writes an unsorted return series with 2018 missing.
func createTestHistoryFile(dir string) (string, error) {
	data := `Year,Return
2017,0.20
2015,0.10
2016,-0.05
2019,0.12
2020,0.03
`
	path := filepath.Join(dir, "returns.csv")
	return path, os.WriteFile(path, []byte(data), 0644)
}
