// Package main provides the tubedash entry point: the HTTP dashboard backend
// plus one-shot chart and KPI queries against the same dataset.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the tubedash CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tubedash",
		Short:        "YouTube video analytics dashboard backend",
		Long:         "Tubedash loads a table of video metadata once and serves filtered, aggregated chart tables over HTTP.",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("tubedash version {{.Version}}\n")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newKPIsCmd())

	return rootCmd
}
