package output

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/rpgo/networth-projection/internal/calculation"
)

// HTMLFormatter produces a standalone HTML report: the Markdown report
// converted with GFM tables, followed by one band chart per scenario.
type HTMLFormatter struct {
	// NoCharts omits the embedded PNG charts.
	NoCharts bool
}

func (h HTMLFormatter) Name() string { return "html" }

var markdownConverter = goldmark.New(goldmark.WithExtensions(extension.GFM))

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 1100px; margin: 2em auto; color: #222; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 4px 10px; }
th { background: #f3f5f7; }
figure { margin: 2em 0; }
</style>
</head>
<body>
{{.Body}}
{{range .Charts}}<figure>
<img src="{{.Data}}" alt="{{.Name}} projection band">
<figcaption>{{.Name}}</figcaption>
</figure>
{{end}}</body>
</html>
`))

type htmlChart struct {
	Name string
	Data template.URL
}

func (h HTMLFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdownConverter.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	var charts []htmlChart
	if !h.NoCharts {
		for _, sc := range report.Scenarios {
			img, err := RenderBandChart(sc.Name, sc.Result.QuantileBand, sc.StartDate)
			if errors.Is(err, ErrChartTooShort) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			charts = append(charts, htmlChart{Name: sc.Name, Data: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))})
		}
	}

	data := struct {
		Title  string
		Body   template.HTML
		Charts []htmlChart
	}{"Net Worth Projection Report", template.HTML(body.String()), charts}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
