// Package invoice defines the canonical invoice record and the builder
// that assembles one from layered inputs.
package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Party is the sender of an invoice.
type Party struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Recipient is the client being billed. Company is an optional second
// address line.
type Recipient struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
}

// LineItem is one billable row on an invoice.
type LineItem struct {
	Service  string  `json:"service"`
	Date     string  `json:"date"`
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Total returns quantity times rate for this item.
func (li LineItem) Total() float64 {
	return float64(li.Quantity) * li.Rate
}

// Record is the canonical, fully-resolved representation of one invoice.
// InvoiceNumber is nil when the invoice carries no number.
type Record struct {
	InvoiceNumber *string    `json:"invoice_number"`
	Title         string     `json:"title"`
	Date          string     `json:"date"`
	From          Party      `json:"from"`
	To            Recipient  `json:"to"`
	Items         []LineItem `json:"items"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes,omitempty"`
}

// GrandTotal recomputes the sum of all line totals. The total is never
// stored on the record, so it cannot drift from the items.
func (r *Record) GrandTotal() float64 {
	var sum float64
	for _, item := range r.Items {
		sum += item.Total()
	}
	return sum
}

// Validate checks that the record is renderable: a non-empty title (the
// output filename derives from it) and at least one line item.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Msg: "title is required"}
	}
	if len(r.Items) == 0 {
		return &ValidationError{Field: "items", Msg: "at least one line item is required"}
	}
	return nil
}

// DecodeRecord parses a record from the JSON import format. Unknown keys
// and type mismatches are reported as ValidationError rather than being
// silently dropped.
func DecodeRecord(r io.Reader) (*Record, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, &ValidationError{Field: "invoice JSON", Msg: err.Error()}
	}

	for _, item := range rec.Items {
		if item.Quantity < 0 {
			return nil, &ValidationError{Field: "quantity", Input: item.Service, Msg: "quantity must not be negative"}
		}
		if item.Rate < 0 {
			return nil, &ValidationError{Field: "rate", Input: item.Service, Msg: "rate must not be negative"}
		}
	}

	return &rec, nil
}

// EncodeRecord serializes a record to the JSON export format.
func EncodeRecord(w io.Writer, rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal invoice: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write invoice JSON: %w", err)
	}
	return nil
}

// OutputFilename derives the document filename from the title and invoice
// number. Characters other than letters, digits, space, hyphen and
// underscore are stripped and spaces become hyphens.
func OutputFilename(rec *Record) string {
	var b bytes.Buffer
	for _, c := range rec.Title {
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_':
			b.WriteRune(c)
		case c == ' ':
			b.WriteByte('-')
		}
	}
	safeTitle := b.String()

	if rec.InvoiceNumber != nil && *rec.InvoiceNumber != "" {
		return fmt.Sprintf("%s-%s.pdf", *rec.InvoiceNumber, safeTitle)
	}
	return safeTitle + ".pdf"
}
