package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/config"
	"github.com/rpgo/networth-projection/internal/logging"
)

func newProjectCommand(root *rootOptions) *cobra.Command {
	var configFile string
	var seed int64
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project net worth for every scenario in a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Simulation.Seed = &seed
			}
			if opts.wantsPaths() {
				cfg.Simulation.IncludePaths = true
			}

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(logging.NewAdapter(root.logger(cmd)))
			report, err := engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file (YAML)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override the configured seed")
	cmd.MarkFlagRequired("config")
	opts.addFlags(cmd)

	return cmd
}
