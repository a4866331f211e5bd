package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/meshtopo/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [mesh.msh]",
	Short: "Check the mesh for integrity violations",
	Long:  `Runs every integrity check and reports all violations instead of stopping at the first one.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Validate(ctx, options(cmd, args))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
