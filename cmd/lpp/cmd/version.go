package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lpp-lang/lpp/internal/cli"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Args:  cobra.NoArgs,
		// The version never depends on the config file.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(cmd.OutOrStdout(), "lpp", jsonOutput)
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output version in JSON format")
	return cmd
}
