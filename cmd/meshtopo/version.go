package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/meshtopo"
	"github.com/aretw0/meshtopo/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of meshtopo",
	Run: func(cmd *cobra.Command, args []string) {
		if tui.IsTerminal(cmd.OutOrStdout()) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "meshtopo version %s\n", strings.TrimSpace(meshtopo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
