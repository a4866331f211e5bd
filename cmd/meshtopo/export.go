package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/meshtopo/internal/cli"
)

var exportCmd = &cobra.Command{
	Use:   "export [mesh.msh]",
	Short: "Export the mesh as GeoJSON",
	Long:  `Writes triangles as polygons and boundary or labeled edges as line strings, for inspection in GIS tools.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Export(ctx, options(cmd, args), output)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "-", "GeoJSON output path, - for stdout")
}
