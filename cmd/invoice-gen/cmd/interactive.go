package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/adamluckydo/invoice-generator/pkg/invoice"
	"github.com/adamluckydo/invoice-generator/pkg/storage"
)

// interactiveInput collects a full invoice record from stdin prompts,
// following the same flow the tool has always had: title and date, sender
// with defaults, client selection from the saved profiles, a line-item
// loop, then payment and notes.
func interactiveInput(builder *invoice.Builder, store *storage.ClientStore, counter *storage.Counter) (*invoice.Record, error) {
	in := bufio.NewReader(os.Stdin)
	rec := builder.Empty()

	fmt.Println("\n=== Invoice Generator ===")
	if next, err := counter.Peek(); err == nil {
		fmt.Printf("Next invoice number: %s\n\n", next)
	} else {
		return nil, err
	}

	rec.Title = prompt(in, "Invoice title (e.g., 'Invoice for Consulting')", "")
	rec.Date = prompt(in, "Invoice date", rec.Date)

	fmt.Println("\n--- From (your info) ---")
	rec.From.Name = prompt(in, "Your name", rec.From.Name)
	rec.From.Email = prompt(in, "Your email", rec.From.Email)

	selected, err := promptClientSelection(in, store)
	if err != nil {
		return nil, err
	}
	if selected != nil {
		rec.To.Name = selected.Name
		rec.To.Company = selected.Company
		fmt.Printf("\nUsing client: %s\n", rec.To.Name)
	} else {
		fmt.Println("\n--- To (client) ---")
		rec.To.Name = prompt(in, "Client name/company", "")
		rec.To.Company = prompt(in, "Additional line (optional)", "")
	}

	rec.Items = promptItems(in)

	fmt.Println("\n--- Payment ---")
	rec.PaymentMethod = prompt(in, "Payment method", rec.PaymentMethod)
	rec.Notes = prompt(in, "Notes (optional)", "")

	return rec, nil
}

// prompt reads one line, returning the default when the answer is blank.
func prompt(in *bufio.Reader, msg, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", msg, def)
	} else {
		fmt.Printf("%s: ", msg)
	}
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// promptClientSelection lets the user pick a saved client by number or
// key. Any other answer means "enter a new client".
func promptClientSelection(in *bufio.Reader, store *storage.ClientStore) (*storage.Client, error) {
	clients, err := store.Load()
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, nil
	}

	entries, err := store.List()
	if err != nil {
		return nil, err
	}

	fmt.Println("\n--- Saved Clients ---")
	for i, e := range entries {
		fmt.Printf("  %d. %s: %s\n", i+1, e.Key, e.Display)
	}
	fmt.Printf("  %d. Enter new client\n", len(entries)+1)

	choice := prompt(in, fmt.Sprintf("\nSelect client (1-%d)", len(entries)+1), "")

	if idx, err := strconv.Atoi(choice); err == nil {
		if idx >= 1 && idx <= len(entries) {
			c := clients[entries[idx-1].Key]
			return &c, nil
		}
		return nil, nil
	}
	if c, ok := clients[choice]; ok {
		return &c, nil
	}
	return nil, nil
}

// promptItems collects line items until the service is left blank. At
// least one item is required. Unparseable numbers fall back to quantity 1
// and rate 0 with a warning, matching the historical interactive behavior.
func promptItems(in *bufio.Reader) []invoice.LineItem {
	var items []invoice.LineItem

	fmt.Println("\n--- Line Items ---")
	fmt.Println("Enter items one at a time. Leave service blank to finish.")
	fmt.Println()

	for {
		service := prompt(in, "Service description (or Enter to finish)", "")
		if service == "" {
			if len(items) == 0 {
				fmt.Println("Need at least one item.")
				continue
			}
			break
		}

		date := prompt(in, "  Date/date range", "")
		qtyStr := prompt(in, "  Quantity", "1")
		rateStr := prompt(in, "  Rate ($)", "0")

		qty, qtyErr := strconv.Atoi(qtyStr)
		rate, rateErr := strconv.ParseFloat(strings.NewReplacer("$", "", ",", "").Replace(rateStr), 64)
		if qtyErr != nil || rateErr != nil {
			fmt.Println("  Invalid number, using defaults.")
			qty = 1
			rate = 0
		}

		item := invoice.LineItem{Service: service, Date: date, Quantity: qty, Rate: rate}
		items = append(items, item)
		fmt.Printf("  Added: %s | qty %d @ $%v = $%v\n\n", service, qty, rate, item.Total())
	}

	return items
}
