package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projection/internal/server"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	cfg := server.Config{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections and charts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.NewServer(cfg, root.logger(cmd))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "concurrent paths per request (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&cfg.MaxPaths, "max-paths", server.DefaultMaxPaths, "largest path count a request may ask for")
	cmd.Flags().IntVar(&cfg.MaxDays, "max-days", server.DefaultMaxDays, "longest horizon in days a request may ask for")
	cmd.Flags().IntVar(&cfg.MaxSamples, "max-samples", server.DefaultMaxSamples, "largest paths*(days+1) a request may ask for")
	cmd.Flags().DurationVar(&cfg.ChartTTL, "chart-ttl", server.DefaultChartTTL, "how long rendered charts are cached")
	cmd.Flags().IntVar(&cfg.MaxCharts, "max-charts", server.DefaultMaxCharts, "most rendered charts kept in the cache")

	return cmd
}
