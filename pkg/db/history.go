package db

import (
	"database/sql"
	"fmt"
	"time"
)

// HistoryRecord is one generated invoice in the history log.
type HistoryRecord struct {
	ID            int64
	InvoiceNumber sql.NullString
	Title         string
	Recipient     string
	Total         float64
	OutputPath    string
	GeneratedAt   time.Time
}

// Stats summarizes the invoice history.
type Stats struct {
	TotalInvoices int
	TotalBilled   float64
	LastGenerated sql.NullString
}

// History manages invoice history operations.
type History struct {
	conn *Connection
}

// NewHistory creates a new History instance.
func NewHistory(conn *Connection) *History {
	return &History{conn: conn}
}

// Record logs a generated invoice.
func (h *History) Record(rec HistoryRecord) error {
	query := `
		INSERT INTO invoice_history (invoice_number, title, recipient, total, output_path)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		rec.InvoiceNumber,
		rec.Title,
		rec.Recipient,
		rec.Total,
		rec.OutputPath,
	)
	if err != nil {
		return fmt.Errorf("failed to record invoice: %w", err)
	}

	return nil
}

// Recent retrieves the most recently generated invoices, newest first.
func (h *History) Recent(limit int) ([]HistoryRecord, error) {
	query := `
		SELECT id, invoice_number, title, recipient, total, output_path, generated_at
		FROM invoice_history
		ORDER BY generated_at DESC, id DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice history: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.InvoiceNumber,
			&rec.Title,
			&rec.Recipient,
			&rec.Total,
			&rec.OutputPath,
			&rec.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetStats retrieves summary statistics for the history.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM invoice_history`).
		Scan(&stats.TotalInvoices, &stats.TotalBilled)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(generated_at) FROM invoice_history`).Scan(&stats.LastGenerated)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last generated time: %w", err)
	}

	return &stats, nil
}
