package main

import (
	"context"
	"errors"

	"github.com/aretw0/gridsweep"
	"github.com/aretw0/gridsweep/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full sweep",
	Long:  `Runs all 195 trials against the solver, sequentially, ignoring solver exit codes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		configPath, _ := cmd.Flags().GetString("config")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		err := cli.RunSweep(ctx, cli.RunOptions{
			Dir:        dir,
			ConfigPath: configPath,
			Overrides:  configOverrides(cmd),
			DryRun:     dryRun,
			Quiet:      quiet,
			Version:    gridsweep.Version,
		})
		if errors.Is(err, context.Canceled) && ctx.Signal() != nil {
			return errors.New("interrupted by " + ctx.Signal().String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("workdir", "", "Working directory for the solver (default --dir)")
	runCmd.Flags().Bool("dry-run", false, "Print the invocations instead of running them")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	runCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	runCmd.Flags().String("log-format", "text", "Log format: text or json")
	runCmd.Flags().String("metrics-addr", "", "Serve /metrics and /status on this address (e.g. :2112)")
	runCmd.Flags().String("redis-addr", "", "Hold a Redis lock for the sweep so only one driver runs per solver")
	runCmd.Flags().Duration("lock-ttl", 0, "Lease of the Redis lock (default 24h)")

	// 'run' is the default if no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
