package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/config"
	"github.com/rpgo/networth-projection/internal/output"
)

func runExample(t *testing.T) *calculation.ProjectionReport {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(exampleConfig)
	require.NoError(t, err)
	report, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	return report
}

func TestOutputGeneration(t *testing.T) {
	report := runExample(t)
	dir := t.TempDir()

	for _, format := range output.AvailableFormatterNames() {
		t.Run(format, func(t *testing.T) {
			files, err := output.GenerateReport(report, format, filepath.Join(dir, format))
			require.NoError(t, err)
			require.Len(t, files, 1)

			info, err := os.Stat(files[0])
			require.NoError(t, err)
			assert.Positive(t, info.Size())
			assert.True(t, strings.HasSuffix(files[0], "."+output.ExtensionFor(format)), files[0])
		})
	}
}

func TestQueryExampleReport(t *testing.T) {
	report := runExample(t)

	names, err := output.QueryReport(report, "$.scenarios[*].name")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Baseline", "Historical Returns"}, names)

	days, err := output.QueryReport(report, "$.scenarios[0].result.summary.checkpoints[*].day")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{float64(365), float64(730)}, days)
}
