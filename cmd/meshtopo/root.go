package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/meshtopo/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "meshtopo",
	Short: "meshtopo converts Gmsh triangular meshes into solver topology tables",
	Long: `meshtopo reads a Gmsh .msh file, derives the edge adjacency of its triangles
and writes the geometry and topology tables read by finite-volume solvers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./meshtopo.yaml when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Bool("keep-3d", false, "Keep z coordinates even when the mesh is planar")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write build metrics in Prometheus textfile format")
}

// options collects the shared flags. The input mesh is the first positional argument, if any.
func options(cmd *cobra.Command, args []string) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	keep3D, _ := cmd.Flags().GetBool("keep-3d")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	opts := cli.Options{
		ConfigPath:  configPath,
		Debug:       debug,
		Keep3D:      keep3D,
		MetricsFile: metricsFile,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts
}
