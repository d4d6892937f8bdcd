package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "busfabric",
	Short: "Cycle-level simulations of the memory bus fabric.",
	Long: `The busfabric tool simulates the on-chip bus fabric that bridges a ` +
		`simple synchronous bus master, through protocol adapters and a ` +
		`write-back cache, to a wide high-bandwidth memory endpoint.`,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int("monitor-port", 0,
		"port for the monitoring server, 0 disables it")
	rootCmd.PersistentFlags().Bool("dashboard", false,
		"open the monitoring dashboard in a browser")
	rootCmd.PersistentFlags().String("trace", os.Getenv("BUSFABRIC_TRACE_DB"),
		"record bus activity into an SQLite database at this path")
}
