package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projection/internal/config"
)

func newInitCommand() *cobra.Command {
	var outputFile string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(outputFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outputFile)
			}
			parser := config.NewInputParser()
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), outputFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "networth.yaml", "configuration file to create")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
