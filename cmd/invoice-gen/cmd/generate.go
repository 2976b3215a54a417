package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamluckydo/invoice-generator/pkg/config"
	"github.com/adamluckydo/invoice-generator/pkg/db"
	"github.com/adamluckydo/invoice-generator/pkg/invoice"
	"github.com/adamluckydo/invoice-generator/pkg/pdf"
	"github.com/adamluckydo/invoice-generator/pkg/storage"
)

var (
	fromJSON     string
	title        string
	date         string
	toName       string
	toCompany    string
	fromName     string
	fromEmail    string
	itemStrs     []string
	payment      string
	notes        string
	outputPath   string
	saveJSON     string
	invoiceNum   string
	noNumber     bool
	clientKey    string
	listClients  bool
	saveClient   string
	deleteClient string
)

func init() {
	f := rootCmd.Flags()

	// Invoice data
	f.StringVarP(&fromJSON, "from-json", "j", "", "load invoice data from JSON file")
	f.StringVarP(&title, "title", "t", "", "invoice title")
	f.StringVarP(&date, "date", "d", "", "invoice date (default: today)")
	f.StringVar(&toName, "to", "", "client name")
	f.StringVar(&toCompany, "to-company", "", "client company (optional second line)")
	f.StringVar(&fromName, "from-name", "", "your name")
	f.StringVar(&fromEmail, "from-email", "", "your email")
	f.StringArrayVarP(&itemStrs, "item", "i", nil, "line item as 'service,date,quantity,rate' (can repeat)")
	f.StringVarP(&payment, "payment", "p", "", "payment method")
	f.StringVarP(&notes, "notes", "n", "", "additional notes")
	f.StringVarP(&outputPath, "output", "o", "", "output filename (default: auto-generated)")
	f.StringVar(&saveJSON, "save-json", "", "also save invoice data to JSON file")

	// Invoice numbering
	f.StringVar(&invoiceNum, "invoice-number", "", "manual invoice number (default: auto-generated)")
	f.BoolVar(&noNumber, "no-number", false, "don't include an invoice number")

	// Client management
	f.StringVarP(&clientKey, "client", "c", "", "use saved client profile by key")
	f.BoolVar(&listClients, "list-clients", false, "list saved client profiles")
	f.StringVar(&saveClient, "save-client", "", "save client as profile KEY (use with --to)")
	f.StringVar(&deleteClient, "delete-client", "", "delete a saved client profile")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	exitOnError(err, "failed to load configuration")
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	paths := storage.NewPaths(cfg.DataDir)
	store := storage.NewClientStore(paths)
	counter := storage.NewCounter(paths, cfg.InvoicePrefix)

	// Client management commands complete their action and exit without
	// rendering, except --save-client combined with --item.
	if listClients {
		runListClients(store)
		return nil
	}

	if deleteClient != "" {
		runDeleteClient(store, deleteClient)
		return nil
	}

	if saveClient != "" {
		if toName == "" {
			return fmt.Errorf("--save-client requires --to")
		}
		err := store.Upsert(saveClient, storage.Client{Name: toName, Company: toCompany})
		exitOnError(err, "failed to save client")
		fmt.Printf("Saved client: %s\n", saveClient)
		if len(itemStrs) == 0 {
			return nil
		}
	}

	builder := invoice.NewBuilder(cfg, counter)
	policy := invoice.NumberPolicy{Explicit: invoiceNum, NoNumber: noNumber}

	rec, err := resolveRecord(cmd, builder, store, counter, policy)
	if err != nil {
		return err
	}

	if err := rec.Validate(); err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = invoice.OutputFilename(rec)
	}

	renderer := &pdf.Renderer{LogoPath: paths.LogoFile()}
	exitOnError(renderer.RenderFile(rec, out), "failed to generate PDF")

	if rec.InvoiceNumber != nil {
		fmt.Printf("\nGenerated: %s (Invoice #%s)\n", out, *rec.InvoiceNumber)
	} else {
		fmt.Printf("\nGenerated: %s\n", out)
	}

	exitOnError(recordHistory(paths, rec, out), "failed to record invoice history")

	if saveJSON != "" {
		exitOnError(writeRecordJSON(rec, saveJSON), "failed to save invoice JSON")
		fmt.Printf("Saved data: %s\n", saveJSON)
	}

	return nil
}

// resolveRecord picks the input source: JSON file, then explicit CLI
// fields, then interactive prompts. The number policy is applied last in
// every path.
func resolveRecord(cmd *cobra.Command, builder *invoice.Builder, store *storage.ClientStore, counter *storage.Counter, policy invoice.NumberPolicy) (*invoice.Record, error) {
	if fromJSON != "" {
		rec, err := loadRecordJSON(fromJSON)
		if err != nil {
			return nil, err
		}
		if err := builder.Finalize(rec, policy); err != nil {
			return nil, err
		}
		return rec, nil
	}

	if title != "" || len(itemStrs) > 0 || clientKey != "" {
		return buildFromFlags(cmd, builder, store, policy)
	}

	rec, err := interactiveInput(builder, store, counter)
	if err != nil {
		return nil, err
	}
	if err := builder.Finalize(rec, policy); err != nil {
		return nil, err
	}
	return rec, nil
}

func buildFromFlags(cmd *cobra.Command, builder *invoice.Builder, store *storage.ClientStore, policy invoice.NumberPolicy) (*invoice.Record, error) {
	var profile *invoice.Recipient
	if clientKey != "" {
		c, err := store.Get(clientKey)
		if err != nil {
			return nil, fmt.Errorf("unknown client %q (use --list-clients to see available): %w", clientKey, err)
		}
		profile = &invoice.Recipient{Name: c.Name, Company: c.Company}
	}

	items := make([]invoice.LineItem, 0, len(itemStrs))
	for _, s := range itemStrs {
		item, err := invoice.ParseItem(s)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	ov := invoice.Overrides{Items: items}
	flags := cmd.Flags()
	if flags.Changed("title") {
		ov.Title = &title
	}
	if flags.Changed("date") {
		ov.Date = &date
	}
	if flags.Changed("to") {
		ov.ToName = &toName
	}
	if flags.Changed("to-company") {
		ov.ToCompany = &toCompany
	}
	if flags.Changed("from-name") {
		ov.FromName = &fromName
	}
	if flags.Changed("from-email") {
		ov.FromEmail = &fromEmail
	}
	if flags.Changed("payment") {
		ov.PaymentMethod = &payment
	}
	if flags.Changed("notes") {
		ov.Notes = &notes
	}
	if len(items) == 0 {
		ov.Items = nil
	}

	return builder.Build(profile, ov, policy)
}

func runListClients(store *storage.ClientStore) {
	entries, err := store.List()
	exitOnError(err, "failed to load clients")

	if len(entries) == 0 {
		fmt.Println("No saved clients.")
		return
	}
	fmt.Println("\nSaved clients:")
	for _, e := range entries {
		fmt.Printf("  %s: %s\n", e.Key, e.Display)
	}
}

func runDeleteClient(store *storage.ClientStore, key string) {
	deleted, err := store.Delete(key)
	exitOnError(err, "failed to delete client")

	if deleted {
		fmt.Printf("Deleted client: %s\n", key)
	} else {
		fmt.Printf("Client not found: %s\n", key)
	}
}

func loadRecordJSON(path string) (*invoice.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open invoice JSON: %w", err)
	}
	defer f.Close()
	return invoice.DecodeRecord(f)
}

func writeRecordJSON(rec *invoice.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return invoice.EncodeRecord(f, rec)
}

// recordHistory logs the generated invoice to the history database. It
// runs after the PDF is written, so a history failure never loses a
// rendered document.
func recordHistory(paths *storage.Paths, rec *invoice.Record, out string) error {
	conn, err := db.Open(paths.HistoryDB())
	if err != nil {
		return err
	}
	defer conn.Close()

	entry := db.HistoryRecord{
		Title:      rec.Title,
		Recipient:  rec.To.Name,
		Total:      rec.GrandTotal(),
		OutputPath: out,
	}
	if rec.InvoiceNumber != nil {
		entry.InvoiceNumber = sql.NullString{String: *rec.InvoiceNumber, Valid: true}
	}

	if err := db.NewHistory(conn).Record(entry); err != nil {
		return err
	}

	slog.Debug("recorded invoice history", "path", paths.HistoryDB())
	return nil
}
