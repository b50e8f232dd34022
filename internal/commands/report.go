package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/output"
)

// reportOptions are the output flags shared by project and demo.
type reportOptions struct {
	format    string
	outputDir string
	query     string
}

func (o *reportOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "console",
		"output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" or all")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", "", "write report files to this directory instead of stdout")
	cmd.Flags().StringVar(&o.query, "query", "", "print the result of a JSONPath query against the JSON report")
}

// wantsPaths reports whether the selected format needs the raw ensemble.
func (o *reportOptions) wantsPaths() bool {
	return output.NormalizeFormatName(o.format) == "paths-csv"
}

// emit writes report to stdout, or to files when an output directory is set
// or the format is binary or multi-file.
func (o *reportOptions) emit(cmd *cobra.Command, report *calculation.ProjectionReport) error {
	out := cmd.OutOrStdout()
	if o.query != "" {
		v, err := output.QueryReport(report, o.query)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	name := output.NormalizeFormatName(o.format)
	if o.outputDir != "" || name == "all" || name == "png" {
		dir := o.outputDir
		if dir == "" {
			dir = "."
		}
		files, err := output.GenerateReport(report, name, dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(out, "Report written to %s\n", f)
		}
		return nil
	}

	f := output.GetFormatterByName(name)
	if f == nil {
		return output.UnsupportedFormatError(o.format)
	}
	if c, ok := f.(output.ConsoleFormatter); ok {
		c.Style = consoleStyle(out)
		f = c
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// consoleStyle picks a coloured style only when w is a terminal.
func consoleStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return output.StyleDark
	}
	return output.StylePlain
}
