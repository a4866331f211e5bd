package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/meshtopo/internal/cli"
)

var infoCmd = &cobra.Command{
	Use:   "info [mesh.msh]",
	Short: "Summarize the mesh topology",
	Long:  `Prints vertex, triangle and edge counts and the size of every boundary group.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Info(ctx, options(cmd, args), plain)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
