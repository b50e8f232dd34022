package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/rpgo/networth-projection/internal/calculation"
)

const (
	// StylePlain renders without ANSI escapes; safe for pipes and files.
	StylePlain = "notty"
	// StyleDark suits dark terminal backgrounds.
	StyleDark = "dark"

	defaultWordWrap = 100
)

// ConsoleFormatter renders the Markdown report for terminals.
type ConsoleFormatter struct {
	// Style is a glamour standard style name. Empty means StylePlain.
	Style string
	// WordWrap is the wrap width; zero means 100 columns.
	WordWrap int
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}

	style := c.Style
	if style == "" {
		style = StylePlain
	}
	wrap := c.WordWrap
	if wrap <= 0 {
		wrap = defaultWordWrap
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return r.RenderBytes(md)
}

// ConsoleLiteFormatter provides a concise plain-text summary.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "NET WORTH PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range report.Scenarios {
		r := sc.Result
		fmt.Fprintf(&buf, "%s: P10=%s P50=%s P90=%s Depletion=%s\n",
			sc.Name,
			FormatCurrency(r.Summary.FinalPercentiles.P10),
			FormatCurrency(r.Summary.MedianFinalValue),
			FormatCurrency(r.Summary.FinalPercentiles.P90),
			FormatRate(r.Summary.DepletionRate),
		)
		fmt.Fprintf(&buf, "  Paths=%s Days=%d Seed=%d Mode=%s\n",
			FormatCount(r.Params.PathCount), r.Params.HorizonDays, r.Params.Seed, r.SeedMode)
	}
	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.MedianGain), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
