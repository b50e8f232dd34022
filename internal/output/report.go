package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-projection/internal/calculation"
)

// allFormats are written by the "all" pseudo-format.
var allFormats = []string{"json", "csv", "html"}

// GenerateReport writes report in the named format into dir and returns the
// written file names. "all" writes JSON, band CSV and HTML.
func GenerateReport(report *calculation.ProjectionReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range allFormats {
			written, err := GenerateReport(report, name, dir)
			if err != nil {
				return files, err
			}
			files = append(files, written...)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, UnsupportedFormatError(format)
	}
	filename, err := WriteFormatted(f, report, dir, ExtensionFor(f.Name()))
	if err != nil {
		return nil, fmt.Errorf("%s report: %w", f.Name(), err)
	}
	return []string{filename}, nil
}

// UnsupportedFormatError wraps ErrUnsupportedFormat with the available
// formatter names and aliases.
func UnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
