package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gridsweep",
	Short: "gridsweep runs a benchmark solver over a fixed parameter grid",
	Long: `gridsweep invokes an external solver once per cell of a fixed 13x15 grid:

  <solver> -t 2^j -c i -s 42    for i in 0..12, j in 0..14

Trials run one at a time, in order, each waiting for the previous solver to exit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Project directory (config lookup and solver working directory)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default <dir>/gridsweep.yaml if present)")
	rootCmd.PersistentFlags().String("solver", "", "Solver executable (default ./parallel)")
	rootCmd.PersistentFlags().String("solver-file", "", "Solver description file (YAML or JSON: path, dir, env)")
}

// configOverrides collects explicitly set flags under their config keys.
func configOverrides(cmd *cobra.Command) map[string]any {
	keys := map[string]string{
		"solver":       "solver",
		"solver-file":  "solver_file",
		"workdir":      "dir",
		"log-level":    "log_level",
		"log-format":   "log_format",
		"metrics-addr": "metrics_addr",
		"redis-addr":   "redis_addr",
		"lock-ttl":     "lock_ttl",
	}
	out := map[string]any{}
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		out[key] = f.Value.String()
	}
	return out
}
