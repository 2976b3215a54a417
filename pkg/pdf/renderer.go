// Package pdf renders a resolved invoice record into a printable PDF
// document with gofpdf.
package pdf

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/adamluckydo/invoice-generator/pkg/invoice"
)

// Letter layout in inches, matching the classic generated documents:
// 0.75in margins, fixed table column widths.
const (
	marginIn  = 0.75
	lineH     = 0.18
	rowH      = 0.22
	headingH  = 0.28
	sectionGp = 0.25
	smallGp   = 0.15
)

var colWidths = [5]float64{2.5, 1.25, 0.75, 0.75, 0.75}

var colHeaders = [5]string{"Services", "Date", "Quantity", "Rate", "Total"}

// Renderer turns invoice records into PDF bytes. Rendering is pure given
// the record and logo file; the same inputs produce identical bytes.
type Renderer struct {
	// LogoPath is an optional letterhead image, drawn only when the file
	// exists.
	LogoPath string
}

// Render produces the document as a byte slice. The record is validated
// first, so no partial output is ever produced for an unrenderable record.
func (r *Renderer) Render(rec *invoice.Record) ([]byte, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	f := gofpdf.New("P", "in", "Letter", "")
	// Pin the embedded timestamps so identical records give identical files.
	f.SetCreationDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	f.SetModificationDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	f.SetMargins(marginIn, marginIn, marginIn)
	f.AddPage()

	if r.LogoPath != "" {
		if _, err := os.Stat(r.LogoPath); err == nil {
			f.ImageOptions(r.LogoPath, marginIn, f.GetY(), 2.0, 0.6, true, gofpdf.ImageOptions{}, 0, "")
			f.Ln(sectionGp)
		}
	}

	f.SetFont("Helvetica", "", 10)
	if rec.InvoiceNumber != nil && *rec.InvoiceNumber != "" {
		labeled(f, "Invoice #:", *rec.InvoiceNumber)
	}

	f.SetFont("Helvetica", "B", 14)
	f.CellFormat(0, headingH, rec.Title, "", 1, "L", false, 0, "")
	f.SetFont("Helvetica", "", 10)
	labeled(f, "Date:", rec.Date)
	f.Ln(sectionGp)

	f.SetFont("Helvetica", "B", 10)
	f.CellFormat(0, lineH, "From:", "", 1, "L", false, 0, "")
	f.SetFont("Helvetica", "", 10)
	f.CellFormat(0, lineH, rec.From.Name, "", 1, "L", false, 0, "")
	f.CellFormat(0, lineH, rec.From.Email, "", 1, "L", false, 0, "")
	f.Ln(smallGp)

	f.SetFont("Helvetica", "B", 10)
	f.CellFormat(0, lineH, "To:", "", 1, "L", false, 0, "")
	f.SetFont("Helvetica", "", 10)
	f.CellFormat(0, lineH, rec.To.Name, "", 1, "L", false, 0, "")
	if rec.To.Company != "" {
		f.CellFormat(0, lineH, rec.To.Company, "", 1, "L", false, 0, "")
	}
	f.Ln(sectionGp)

	r.itemTable(f, rec)
	f.Ln(sectionGp)

	f.SetFont("Helvetica", "", 10)
	labeled(f, "Payment Method:", rec.PaymentMethod)

	if rec.Notes != "" {
		f.Ln(sectionGp)
		labeled(f, "Notes:", rec.Notes)
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderFile renders the record and writes it to path, overwriting any
// existing file. The document is rendered fully in memory first so a
// render failure never leaves a partial file behind.
func (r *Renderer) RenderFile(rec *invoice.Record, path string) error {
	data, err := r.Render(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) itemTable(f *gofpdf.Fpdf, rec *invoice.Record) {
	f.SetFont("Helvetica", "B", 10)
	for i, h := range colHeaders {
		f.CellFormat(colWidths[i], rowH, h, "1", 0, "L", false, 0, "")
	}
	f.Ln(-1)

	f.SetFont("Helvetica", "", 10)
	for _, item := range rec.Items {
		cells := [5]string{
			item.Service,
			item.Date,
			fmt.Sprintf("%d", item.Quantity),
			FormatMoney(item.Rate),
			FormatMoney(item.Total()),
		}
		for i, c := range cells {
			f.CellFormat(colWidths[i], rowH, c, "1", 0, "L", false, 0, "")
		}
		f.Ln(-1)
	}

	f.SetFont("Helvetica", "B", 10)
	totals := [5]string{"Total", "", "", "", FormatMoney(rec.GrandTotal())}
	for i, c := range totals {
		f.CellFormat(colWidths[i], rowH, c, "1", 0, "L", false, 0, "")
	}
	f.Ln(-1)
}

// labeled writes a "Label: value" line with a bold label.
func labeled(f *gofpdf.Fpdf, label, value string) {
	f.SetFont("Helvetica", "B", 10)
	f.CellFormat(f.GetStringWidth(label)+0.05, lineH, label, "", 0, "L", false, 0, "")
	f.SetFont("Helvetica", "", 10)
	f.CellFormat(0, lineH, value, "", 1, "L", false, 0, "")
}

// FormatMoney renders a dollar amount: no decimals for whole values,
// exactly two otherwise. Applied uniformly to rates, line totals, and the
// grand total.
func FormatMoney(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("$%.0f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}
