package output

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/rpgo/networth-projection/internal/calculation"
)

// JSONFormatter serializes the projection report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *calculation.ProjectionReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// QueryReport evaluates a JSONPath expression (e.g.
// "$.scenarios[0].result.summary.median_final_value") against the JSON form
// of report.
func QueryReport(report *calculation.ProjectionReport, path string) (interface{}, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", path, err)
	}
	return v, nil
}
