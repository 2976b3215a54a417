// Package config provides configuration management for the invoice generator.
// It layers built-in defaults, an optional YAML defaults file, and
// environment variables (lowest to highest priority).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults holds the resolved default values used when building an invoice.
// It is an explicit immutable value passed into the builder, not ambient
// global state, so tests can inject alternates.
type Defaults struct {
	FromName      string
	FromEmail     string
	PaymentMethod string
	InvoicePrefix string
	DataDir       string
}

// Builtin returns the compiled-in defaults.
func Builtin() Defaults {
	return Defaults{
		FromName:      "Adam Luck",
		FromEmail:     "adamluckydo@gmail.com",
		PaymentMethod: "PayPal - adamluckydo@gmail.com",
		InvoicePrefix: "INV",
		DataDir:       "data",
	}
}

// defaultsFile mirrors Defaults for the optional YAML file in the data dir.
type defaultsFile struct {
	FromName      string `yaml:"from_name"`
	FromEmail     string `yaml:"from_email"`
	PaymentMethod string `yaml:"payment_method"`
	InvoicePrefix string `yaml:"invoice_prefix"`
}

// Load resolves Defaults from all configuration sources.
// It loads a .env file first (the given path, or ./.env when empty), then
// applies defaults.yaml from the data directory if present, then
// environment variables:
//
//	INVOICE_FROM_NAME, INVOICE_FROM_EMAIL, INVOICE_PAYMENT_METHOD,
//	INVOICE_PREFIX, INVOICE_DATA_DIR
func Load(envFile string) (Defaults, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Defaults{}, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try ./.env, ignore if absent
		_ = godotenv.Load()
	}

	d := Builtin()

	// The data dir must resolve before the defaults file can be found.
	if v := os.Getenv("INVOICE_DATA_DIR"); v != "" {
		d.DataDir = v
	}

	if err := applyDefaultsFile(&d, filepath.Join(d.DataDir, "defaults.yaml")); err != nil {
		return Defaults{}, err
	}

	if v := os.Getenv("INVOICE_FROM_NAME"); v != "" {
		d.FromName = v
	}
	if v := os.Getenv("INVOICE_FROM_EMAIL"); v != "" {
		d.FromEmail = v
	}
	if v := os.Getenv("INVOICE_PAYMENT_METHOD"); v != "" {
		d.PaymentMethod = v
	}
	if v := os.Getenv("INVOICE_PREFIX"); v != "" {
		d.InvoicePrefix = v
	}

	return d, nil
}

// applyDefaultsFile overlays values from a YAML defaults file onto d.
// A missing file is fine; a malformed one is an error rather than a
// silent fallback to builtins.
func applyDefaultsFile(d *Defaults, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read defaults file: %w", err)
	}

	var f defaultsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse defaults file %s: %w", path, err)
	}

	if f.FromName != "" {
		d.FromName = f.FromName
	}
	if f.FromEmail != "" {
		d.FromEmail = f.FromEmail
	}
	if f.PaymentMethod != "" {
		d.PaymentMethod = f.PaymentMethod
	}
	if f.InvoicePrefix != "" {
		d.InvoicePrefix = f.InvoicePrefix
	}

	return nil
}
