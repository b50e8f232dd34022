package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/logging"
	"github.com/rpgo/networth-projection/pkg/dateutil"
)

const defaultDemoYears = 10

func newDemoCommand(root *rootOptions) *cobra.Command {
	var years int
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the fixed demo projection ($50,000 start, 5,000 paths, seed 42)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if years < 0 {
				return fmt.Errorf("years cannot be negative, got %d", years)
			}

			sim := calculation.NewNetWorthSimulator()
			sim.Logger = logging.NewAdapter(root.logger(cmd))
			result, err := sim.Project(calculation.DemoParams(years))
			if err != nil {
				return err
			}
			if !opts.wantsPaths() {
				result = result.WithoutPaths()
			}

			now := time.Now()
			report := &calculation.ProjectionReport{
				GeneratedAt: now,
				Scenarios: []*calculation.ScenarioProjection{{
					Name:         "Demo",
					StartDate:    dateutil.BeginningOfYear(now),
					ReturnSource: "demo",
					Result:       result,
				}},
			}
			return opts.emit(cmd, report)
		},
	}

	cmd.Flags().IntVar(&years, "years", defaultDemoYears, "projection horizon in years")
	opts.addFlags(cmd)

	return cmd
}
