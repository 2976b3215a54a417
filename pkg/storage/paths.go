// Package storage provides the flat-file persistence layer: saved client
// profiles and the invoice sequence counter, both JSON files under one
// data directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves file locations under the data directory.
type Paths struct {
	dataDir string
}

// NewPaths returns a Paths rooted at dataDir.
func NewPaths(dataDir string) *Paths {
	return &Paths{dataDir: dataDir}
}

// DataDir returns the data directory.
func (p *Paths) DataDir() string {
	return p.dataDir
}

// ClientsFile returns the client profile store path.
func (p *Paths) ClientsFile() string {
	return filepath.Join(p.dataDir, "clients.json")
}

// CounterFile returns the sequence counter store path.
func (p *Paths) CounterFile() string {
	return filepath.Join(p.dataDir, "invoice-counter.json")
}

// HistoryDB returns the invoice history database path.
func (p *Paths) HistoryDB() string {
	return filepath.Join(p.dataDir, "history.db")
}

// LogoFile returns the optional letterhead image path.
func (p *Paths) LogoFile() string {
	return filepath.Join(p.dataDir, "logo.png")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (p *Paths) EnsureDataDir() error {
	if err := os.MkdirAll(p.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", p.dataDir, err)
	}
	return nil
}
