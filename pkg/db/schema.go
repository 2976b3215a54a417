// Package db provides SQLite storage for the invoice generation history.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Invoice history table
-- One row per generated invoice document
CREATE TABLE IF NOT EXISTS invoice_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invoice_number TEXT,               -- NULL when generated without a number
    title TEXT NOT NULL,
    recipient TEXT NOT NULL,
    total REAL NOT NULL,               -- Grand total in dollars
    output_path TEXT NOT NULL,         -- Where the PDF was written
    generated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_invoice_history_number
    ON invoice_history(invoice_number);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
