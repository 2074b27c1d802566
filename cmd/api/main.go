// Command api serves the status page and runs the health checker.
//
// Usage:
//
//	api serve     # HTTP server, optional periodic checks
//	api check     # run one report and print it as JSON
//	api version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Service health checker and status server",
	Long: `Probes the configured service groups (internos, sitios_empresa,
externos), classifies each target and forwards the report to the
configured webhooks.

Settings come from the environment: SITES_FILE, WEBHOOK_URLS,
CHECK_INTERVAL, MAX_CONCURRENT_CHECKS, PORT/ADDR, LOG_DIR, LOG_LEVEL.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("healthchecker %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
