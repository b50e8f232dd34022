package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/output"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <file>",
		Short: "Summarize a Year,Return CSV of annual market returns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := calculation.LoadReturnHistory(args[0])
			if err != nil {
				return err
			}
			s := h.Statistics
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:  %s\n", h.Source)
			fmt.Fprintf(out, "Years:   %d-%d (%s observations)\n", h.MinYear, h.MaxYear, output.FormatCount(s.Count))
			fmt.Fprintf(out, "Mean:    %s\n", output.FormatRate(s.Mean))
			fmt.Fprintf(out, "Median:  %s\n", output.FormatRate(s.Median))
			fmt.Fprintf(out, "Std dev: %s\n", output.FormatRate(s.StdDev))
			fmt.Fprintf(out, "Min:     %s\n", output.FormatRate(s.Min))
			fmt.Fprintf(out, "Max:     %s\n", output.FormatRate(s.Max))
			if len(s.MissingYears) > 0 {
				missing := make([]string, len(s.MissingYears))
				for i, y := range s.MissingYears {
					missing[i] = strconv.Itoa(y)
				}
				fmt.Fprintf(out, "Missing: %s\n", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
