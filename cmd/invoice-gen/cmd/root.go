// Package cmd provides CLI commands for invoice-gen.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile string
	dataDir string
	debug   bool
)

// rootCmd generates an invoice when called without a subcommand. Input
// comes from a JSON file, individual flags, or interactive prompts.
var rootCmd = &cobra.Command{
	Use:   "invoice-gen",
	Short: "Generate PDF invoices",
	Long: `invoice-gen generates PDF invoices from command-line input or a JSON file.

It keeps a small amount of local state under the data directory:
saved client profiles and a monotonically increasing invoice counter.

Examples:
  # Interactive mode (prompts for all fields)
  invoice-gen

  # From a JSON file
  invoice-gen --from-json invoice-data.json

  # Quick mode with flags
  invoice-gen --title "Invoice for Consulting" --to "Acme Corp" \
    --item "Consulting,Jan 1-15,10,150"

  # Use a saved client profile
  invoice-gen --client nsm --item "Facilitation,Jan 2025,2,375"

  # Manage client profiles
  invoice-gen --list-clients
  invoice-gen --save-client nsm --to "Nervous System Mastery" \
    --to-company "Curious Humans LLC"
  invoice-gen --delete-client nsm`,
	SilenceUsage: true,
	RunE:         runGenerate,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to .env file (default ./.env)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory for clients and counter (default \"data\", or INVOICE_DATA_DIR)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(historyCmd)
}

// exitOnError logs err and terminates the invocation with a nonzero exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
