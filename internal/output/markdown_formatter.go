package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/pkg/dateutil"
)

// MarkdownFormatter renders the report as GitHub-flavoured Markdown. The
// console and HTML formatters render this document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# Net Worth Projection Report")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Generated %s\n\n", report.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))

	fmt.Fprintln(&buf, "## Scenario Summary")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Scenario | Horizon | Paths | Start | P10 Final | Median Final | P90 Final | Depletion |")
	fmt.Fprintln(&buf, "|---|---|---:|---:|---:|---:|---:|---:|")
	for _, sc := range report.Scenarios {
		r := sc.Result
		fp := r.Summary.FinalPercentiles
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			escapeCell(sc.Name),
			horizonLabel(r.Params.HorizonDays),
			FormatCount(r.Params.PathCount),
			FormatFloatCurrency(r.Params.StartValue),
			FormatCurrency(fp.P10),
			FormatCurrency(r.Summary.MedianFinalValue),
			FormatCurrency(fp.P90),
			FormatRate(r.Summary.DepletionRate),
		)
	}
	fmt.Fprintln(&buf)

	if rec := AnalyzeScenarios(report); rec.ScenarioName != "" && len(report.Scenarios) > 1 {
		fmt.Fprintf(&buf, "**Recommended:** %s (median final %s, %s vs start)\n\n",
			rec.ScenarioName, FormatCurrency(rec.MedianFinalValue), signedPercentage(rec.PercentageChange))
	}

	for _, sc := range report.Scenarios {
		writeScenarioSection(&buf, sc)
	}

	fmt.Fprintln(&buf, "## Key Assumptions")
	fmt.Fprintln(&buf)
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeScenarioSection(buf *bytes.Buffer, sc *calculation.ScenarioProjection) {
	r := sc.Result
	fmt.Fprintf(buf, "## %s\n\n", sc.Name)
	for _, a := range GenerateAssumptions(sc) {
		fmt.Fprintf(buf, "- %s\n", a)
	}
	fmt.Fprintf(buf, "- Final dispersion (coefficient of variation): %s\n\n", r.Summary.FinalDispersion.StringFixed(4))

	if len(r.Summary.Checkpoints) > 0 {
		fmt.Fprintln(buf, "| Day | Date | Years | P10 | P50 | P90 |")
		fmt.Fprintln(buf, "|---:|---|---:|---:|---:|---:|")
		for _, c := range r.Summary.Checkpoints {
			fmt.Fprintf(buf, "| %d | %s | %s | %s | %s | %s |\n",
				c.Day, dateutil.DayLabel(sc.StartDate, c.Day), c.Years.StringFixed(2),
				FormatCurrencyWhole(c.P10), FormatCurrencyWhole(c.P50), FormatCurrencyWhole(c.P90))
		}
		fmt.Fprintln(buf)
	}

	fp := r.Summary.FinalPercentiles
	fmt.Fprintln(buf, "Final distribution:")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "| P10 | P25 | P50 | P75 | P90 |")
	fmt.Fprintln(buf, "|---:|---:|---:|---:|---:|")
	fmt.Fprintf(buf, "| %s | %s | %s | %s | %s |\n\n",
		FormatCurrency(fp.P10), FormatCurrency(fp.P25), FormatCurrency(fp.P50), FormatCurrency(fp.P75), FormatCurrency(fp.P90))
}

func horizonLabel(days int) string {
	years := dateutil.DaysToYears(days, calculation.DaysPerYear)
	return fmt.Sprintf("%d days (%.1f years)", days, years)
}

func signedPercentage(pct decimal.Decimal) string {
	if pct.IsNegative() {
		return FormatPercentage(pct)
	}
	return "+" + FormatPercentage(pct)
}

// escapeCell keeps user-supplied names from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
