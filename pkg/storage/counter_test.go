package storage

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/adamluckydo/invoice-generator/pkg/invoice"
)

func testCounter(t *testing.T) *Counter {
	t.Helper()
	return NewCounter(NewPaths(t.TempDir()), "INV")
}

func TestAllocateSequence(t *testing.T) {
	c := testCounter(t)

	for i := 1; i <= 5; i++ {
		got, err := c.Allocate()
		if err != nil {
			t.Fatalf("Allocate() #%d failed: %v", i, err)
		}
		expected := fmt.Sprintf("INV-%03d", i)
		if got != expected {
			t.Errorf("Allocate() #%d = %q, expected %q", i, got, expected)
		}
	}
}

func TestPeekDoesNotMutate(t *testing.T) {
	c := testCounter(t)

	for i := 0; i < 3; i++ {
		got, err := c.Peek()
		if err != nil {
			t.Fatalf("Peek() failed: %v", err)
		}
		if got != "INV-001" {
			t.Errorf("Peek() = %q, expected INV-001", got)
		}
	}

	got, err := c.Allocate()
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if got != "INV-001" {
		t.Errorf("Allocate() after peeks = %q, expected INV-001", got)
	}

	got, err = c.Peek()
	if err != nil {
		t.Fatalf("Peek() failed: %v", err)
	}
	if got != "INV-002" {
		t.Errorf("Peek() after allocate = %q, expected INV-002", got)
	}
}

func TestCounterWidthGrows(t *testing.T) {
	paths := NewPaths(t.TempDir())
	c := NewCounter(paths, "INV")

	if err := os.WriteFile(paths.CounterFile(), []byte(`{"last_number": 999}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := c.Allocate()
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if got != "INV-1000" {
		t.Errorf("Allocate() past 999 = %q, expected INV-1000", got)
	}
}

func TestCounterCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"wrong type", `{"last_number": "three"}`},
		{"negative", `{"last_number": -2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := NewPaths(t.TempDir())
			c := NewCounter(paths, "INV")
			if err := os.WriteFile(paths.CounterFile(), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			if _, err := c.Peek(); !errors.Is(err, invoice.ErrCorrupt) {
				t.Errorf("Peek() error = %v, expected ErrCorrupt", err)
			}
			if _, err := c.Allocate(); !errors.Is(err, invoice.ErrCorrupt) {
				t.Errorf("Allocate() error = %v, expected ErrCorrupt", err)
			}

			// A corrupt counter must never be silently reset.
			data, err := os.ReadFile(paths.CounterFile())
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.content {
				t.Errorf("corrupt counter file was rewritten to %q", data)
			}
		})
	}
}

func TestCounterCustomPrefix(t *testing.T) {
	c := NewCounter(NewPaths(t.TempDir()), "ACME")

	got, err := c.Peek()
	if err != nil {
		t.Fatalf("Peek() failed: %v", err)
	}
	if got != "ACME-001" {
		t.Errorf("Peek() = %q, expected ACME-001", got)
	}
}
