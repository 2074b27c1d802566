package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one health report and print it",
	Long: `Run the full check cycle once (including webhook delivery) and
print the report as JSON on stdout. If the service groups cannot be
loaded the error is printed as JSON on stderr and the exit code is 1.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	rep, err := a.runner.Run(context.Background())
	if err != nil {
		enc := json.NewEncoder(cmd.ErrOrStderr())
		_ = enc.Encode(map[string]string{"error": "Health checker failed", "details": err.Error()})
		_ = a.logger.Sync()
		os.Exit(1)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rep)
}
