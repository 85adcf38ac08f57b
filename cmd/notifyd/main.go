package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "notifyd",
		Short: "Serve transient notifications to browser clients",
		Long: `notifyd runs the notification host server.

Clients connect over a WebSocket and receive "notify:toast" events;
their hover, keyboard, and action-button interactions flow back and
drive each notification's countdown and action lifecycle on the
server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
