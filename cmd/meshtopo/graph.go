package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/meshtopo/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [mesh.msh]",
	Short: "Export the triangle adjacency visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the dual graph: triangles linked through shared edges, and boundary edges linked to their groups.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		highlight, _ := cmd.Flags().GetInt64Slice("highlight")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Graph(ctx, options(cmd, args), highlight)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Int64Slice("highlight", nil, "Triangle ids to highlight")
}
