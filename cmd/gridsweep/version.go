package main

import (
	"fmt"

	"github.com/aretw0/gridsweep"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gridsweep",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gridsweep version %s\n", gridsweep.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
