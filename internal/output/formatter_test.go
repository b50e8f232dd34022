package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/networth-projection/internal/calculation"
)

var testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func projectScenario(t *testing.T, name string, params calculation.SimulationParams) *calculation.ScenarioProjection {
	t.Helper()
	sim := calculation.NewNetWorthSimulator()
	sim.SeedMode = calculation.SeedPerPath
	result, err := sim.Project(params)
	require.NoError(t, err)
	return &calculation.ScenarioProjection{Name: name, StartDate: testStart, ReturnSource: "configured", Result: result}
}

func buildTestReport(t *testing.T) *calculation.ProjectionReport {
	t.Helper()
	base := calculation.DemoParams(1)
	base.PathCount = 200
	base.HorizonDays = 400

	savings := base
	savings.DailyDriftMean = calculation.DailySurplusMean(1500)

	return &calculation.ProjectionReport{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Scenarios: []*calculation.ScenarioProjection{
			projectScenario(t, "Baseline", base),
			projectScenario(t, "Higher Savings", savings),
		},
	}
}

func TestJSONFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var doc interface{}
	require.NoError(t, json.Unmarshal(out, &doc))

	name, err := jsonpath.Get("$.scenarios[1].name", doc)
	require.NoError(t, err)
	assert.Equal(t, "Higher Savings", name)

	p50, err := jsonpath.Get("$.scenarios[0].result.p50", doc)
	require.NoError(t, err)
	assert.Len(t, p50, 401)

	seed, err := jsonpath.Get("$.scenarios[0].result.params.seed", doc)
	require.NoError(t, err)
	assert.Equal(t, float64(42), seed)

	checkpoints, err := jsonpath.Get("$.scenarios[0].result.summary.checkpoints[*].day", doc)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{float64(365), float64(400)}, checkpoints)
}

func TestQueryReport(t *testing.T) {
	report := buildTestReport(t)

	v, err := QueryReport(report, "$.scenarios[0].result.summary.median_final_value")
	require.NoError(t, err)
	assert.Equal(t, report.Scenarios[0].Result.Summary.MedianFinalValue.String(), v)

	_, err = QueryReport(report, "$.no_such_field")
	assert.Error(t, err)
}

func TestCSVBandsFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := CSVBandsFormatter{}.Format(report)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1+2*401, "header plus one row per scenario day")
	assert.Equal(t, "Scenario,Day,Date,P10,P50,P90", lines[0])
	assert.Equal(t, "Baseline,0,2026-01-01,50000.00,50000.00,50000.00", lines[1])
	assert.True(t, strings.HasPrefix(lines[402], "Higher Savings,0,"), lines[402])
}

func TestCSVPathsFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := CSVPathsFormatter{}.Format(report)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1+2*401)
	header := strings.Split(lines[0], ",")
	assert.Len(t, header, 2+200)
	assert.Equal(t, "Path199", header[len(header)-1])
	assert.True(t, strings.HasPrefix(lines[1], "Baseline,0,50000.00,50000.00"))
}

func TestCSVPathsFormatterWithoutPaths(t *testing.T) {
	report := buildTestReport(t)
	report.Scenarios[1].Result = report.Scenarios[1].Result.WithoutPaths()

	_, err := CSVPathsFormatter{}.Format(report)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPathsUnavailable))
	assert.Contains(t, err.Error(), `"Higher Savings"`)
}

func TestMarkdownFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := MarkdownFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	for _, want := range []string{
		"## Scenario Summary",
		"| Baseline | 400 days (1.1 years) | 200 | $50,000.00 |",
		"**Recommended:** Higher Savings",
		"## Higher Savings",
		"| 365 | 2027-01-01 | 1.00 |",
		"Annual return: 7.20% mean, 15.00% volatility (configured)",
		"Monthly surplus: $85.00 mean, $70.00 standard deviation",
		"Seed 42 in per_path mode",
		"## Key Assumptions",
	} {
		assert.Contains(t, content, want)
	}
	assert.Regexp(t, `\| 365 \| 2027-01-01 \| 1\.00 \| -?\$[\d,]+ \| -?\$[\d,]+ \| -?\$[\d,]+ \|\n`, content,
		"checkpoint columns are whole dollars")
}

func TestMarkdownFormatterEscapesNames(t *testing.T) {
	report := buildTestReport(t)
	report.Scenarios[0].Name = "A|B"
	out, err := MarkdownFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `| A\|B |`)
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Net Worth Projection Report")
	assert.Contains(t, content, "Higher Savings")
	assert.NotContains(t, content, "\x1b[", "plain style must not emit ANSI escapes")
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "NET WORTH PROJECTION SUMMARY"))
	assert.Contains(t, content, "Recommended: Higher Savings")
	assert.Contains(t, content, "Paths=200 Days=400 Seed=42 Mode=per_path")
}

func TestHTMLFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "<table>")
	assert.Contains(t, content, "Scenario Summary")
	assert.Contains(t, content, "Key Assumptions")
	assert.Equal(t, 2, strings.Count(content, `src="data:image/png;base64,`))

	out, err = HTMLFormatter{NoCharts: true}.Format(report)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<img")
}

func TestHTMLFormatterSkipsChartForZeroHorizon(t *testing.T) {
	params := calculation.DemoParams(0)
	params.PathCount = 10
	report := &calculation.ProjectionReport{Scenarios: []*calculation.ScenarioProjection{projectScenario(t, "Now", params)}}

	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<img")
}

func TestPNGFormatter(t *testing.T) {
	report := buildTestReport(t)

	out, err := PNGFormatter{}.Format(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")), "output is not a PNG")

	out, err = PNGFormatter{Scenario: "Higher Savings"}.Format(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))

	_, err = PNGFormatter{Scenario: "missing"}.Format(report)
	assert.Error(t, err)

	_, err = PNGFormatter{}.Format(&calculation.ProjectionReport{})
	assert.Error(t, err)
}

func TestRenderBandChartTooShort(t *testing.T) {
	band := calculation.QuantileBand{P10: []float64{1}, P50: []float64{1}, P90: []float64{1}}
	_, err := RenderBandChart("x", band, testStart)
	assert.ErrorIs(t, err, ErrChartTooShort)
}

func TestSampleDays(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, sampleDays(3, 120))

	idx := sampleDays(3651, 120)
	require.Len(t, idx, 120)
	assert.Equal(t, 0, idx[0])
	assert.Equal(t, 3650, idx[119])
	for i := 1; i < len(idx); i++ {
		assert.Greater(t, idx[i], idx[i-1])
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"markdown", "markdown_prefix.golden", MarkdownFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleLiteFormatter{}},
		{"csv_bands", "csv_bands.golden", CSVBandsFormatter{}},
		{"html", "html_prefix.golden", HTMLFormatter{NoCharts: true}},
	}
	report := buildTestReport(t)
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterAliasResolution(t *testing.T) {
	tests := map[string]string{
		"terminal":     "console",
		"summary":      "console-lite",
		"csv-paths":    "paths-csv",
		"MD":           "markdown",
		" chart ":      "png",
		"json":         "json",
		"html-report":  "html",
		"ensemble-csv": "paths-csv",
	}
	for alias, want := range tests {
		f := GetFormatterByName(alias)
		if f == nil {
			t.Fatalf("alias %q did not resolve to a formatter", alias)
		}
		if f.Name() != want {
			t.Fatalf("alias %q resolved to %q, want %q", alias, f.Name(), want)
		}
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "html", "json", "markdown", "paths-csv", "png"}, AvailableFormatterNames())
	assert.Equal(t, "md", ExtensionFor("md"))
	assert.Equal(t, "csv", ExtensionFor("paths-csv"))
	assert.Equal(t, "png", ExtensionFor("chart"))
}

func TestWriteFormatted(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	dir := filepath.Join(t.TempDir(), "reports")
	name, err := WriteFormatted(JSONFormatter{}, buildTestReport(t), dir, "json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "networth_projection_20250601_123045.json"), name)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GenerateReport(&calculation.ProjectionReport{}, "definitely-not-a-format", t.TempDir())
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}
