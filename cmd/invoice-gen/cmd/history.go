package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/adamluckydo/invoice-generator/pkg/config"
	"github.com/adamluckydo/invoice-generator/pkg/db"
	"github.com/adamluckydo/invoice-generator/pkg/pdf"
	"github.com/adamluckydo/invoice-generator/pkg/storage"
)

var historyLimit int

// historyCmd shows recently generated invoices.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently generated invoices",
	Long: `Show the invoice generation history.

Lists the most recently generated invoices with their number, recipient,
total, and output path, followed by summary statistics.

Example:
  invoice-gen history
  invoice-gen history --limit 50`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of invoices to list")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(envFile)
	exitOnError(err, "failed to load configuration")
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	paths := storage.NewPaths(cfg.DataDir)
	dbPath := paths.HistoryDB()
	slog.Debug("opening history database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	history := db.NewHistory(conn)

	records, err := history.Recent(historyLimit)
	exitOnError(err, "failed to load history")

	if len(records) == 0 {
		fmt.Println("No invoices generated yet.")
		return
	}

	fmt.Println("\n=== Invoice History ===")
	for _, rec := range records {
		number := "(no number)"
		if rec.InvoiceNumber.Valid {
			number = rec.InvoiceNumber.String
		}
		fmt.Printf("  %-12s %-30s %-10s %s\n", number, rec.Title, pdf.FormatMoney(rec.Total), rec.OutputPath)
	}

	stats, err := history.GetStats()
	exitOnError(err, "failed to load statistics")

	fmt.Println()
	fmt.Printf("Total invoices: %d\n", stats.TotalInvoices)
	fmt.Printf("Total billed:   %s\n", pdf.FormatMoney(stats.TotalBilled))
	if stats.LastGenerated.Valid {
		fmt.Printf("Last generated: %s\n", stats.LastGenerated.String)
	}
	fmt.Println()
}
