package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/meshtopo/internal/cli"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [mesh.msh]",
	Short: "Write the geometry and topology tables of a mesh",
	Long: `Reads a Gmsh mesh and writes the geometry table (one vertex per line) and the
topology table (edge records, then one row per triangle). Nothing is written
when the mesh fails an integrity check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd, args)
		opts.Geometry, _ = cmd.Flags().GetString("geometry")
		opts.Topology, _ = cmd.Flags().GetString("topology")
		opts.EdgeIDs, _ = cmd.Flags().GetString("edge-ids")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Convert(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("geometry", "g", "", "Geometry table path (default: geometry.txt)")
	convertCmd.Flags().StringP("topology", "t", "", "Topology table path (default: topology.txt)")
	convertCmd.Flags().String("edge-ids", "", "Edge reference scheme in triangle rows: synthetic or line (default: synthetic)")
}
