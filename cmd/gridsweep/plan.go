package main

import (
	"os"

	"github.com/aretw0/gridsweep/internal/cli"
	"github.com/aretw0/gridsweep/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the invocations a sweep would run, in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		configPath, _ := cmd.Flags().GetString("config")
		markdown, _ := cmd.Flags().GetBool("markdown")

		return cli.Plan(cmd.Context(), cli.PlanOptions{
			Dir:        dir,
			ConfigPath: configPath,
			Overrides:  configOverrides(cmd),
			Markdown:   markdown,
			Render:     tui.IsTerminal(os.Stdout),
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Bool("markdown", false, "Print a markdown table (rendered when stdout is a terminal)")
}
