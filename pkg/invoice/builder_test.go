package invoice

import (
	"testing"

	"github.com/adamluckydo/invoice-generator/pkg/config"
)

// fakeAllocator counts allocations so tests can assert the counter is
// consulted exactly once, and only when the policy requires it.
type fakeAllocator struct {
	next  string
	calls int
}

func (f *fakeAllocator) Allocate() (string, error) {
	f.calls++
	return f.next, nil
}

func testDefaults() config.Defaults {
	return config.Defaults{
		FromName:      "Test Sender",
		FromEmail:     "sender@example.com",
		PaymentMethod: "Wire transfer",
		InvoicePrefix: "TST",
		DataDir:       "data",
	}
}

func strPtr(s string) *string { return &s }

func TestBuildDefaults(t *testing.T) {
	alloc := &fakeAllocator{next: "TST-001"}
	b := NewBuilder(testDefaults(), alloc)

	rec, err := b.Build(nil, Overrides{Title: strPtr("Invoice")}, NumberPolicy{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if rec.From.Name != "Test Sender" || rec.From.Email != "sender@example.com" {
		t.Errorf("sender defaults not applied: %+v", rec.From)
	}
	if rec.PaymentMethod != "Wire transfer" {
		t.Errorf("payment default not applied: %q", rec.PaymentMethod)
	}
	if rec.Date == "" {
		t.Error("date default not applied")
	}
}

func TestBuildMergePrecedence(t *testing.T) {
	alloc := &fakeAllocator{next: "TST-001"}
	b := NewBuilder(testDefaults(), alloc)

	profile := &Recipient{Name: "Profile Name", Company: "Profile Co"}

	// Profile fills the recipient over the defaults.
	rec, err := b.Build(profile, Overrides{}, NumberPolicy{NoNumber: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rec.To.Name != "Profile Name" || rec.To.Company != "Profile Co" {
		t.Errorf("profile not applied: %+v", rec.To)
	}

	// Explicit overrides beat both the profile and the defaults.
	rec, err = b.Build(profile, Overrides{
		ToName:   strPtr("Override Name"),
		FromName: strPtr("Override Sender"),
	}, NumberPolicy{NoNumber: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rec.To.Name != "Override Name" {
		t.Errorf("To.Name = %q, override should win", rec.To.Name)
	}
	if rec.To.Company != "Profile Co" {
		t.Errorf("To.Company = %q, un-overridden profile field should remain", rec.To.Company)
	}
	if rec.From.Name != "Override Sender" {
		t.Errorf("From.Name = %q, override should win", rec.From.Name)
	}
}

func TestNumberPolicy(t *testing.T) {
	t.Run("explicit number used verbatim", func(t *testing.T) {
		alloc := &fakeAllocator{next: "TST-001"}
		b := NewBuilder(testDefaults(), alloc)

		rec, err := b.Build(nil, Overrides{}, NumberPolicy{Explicit: "CUSTOM-42"})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if rec.InvoiceNumber == nil || *rec.InvoiceNumber != "CUSTOM-42" {
			t.Errorf("InvoiceNumber = %v, expected CUSTOM-42", rec.InvoiceNumber)
		}
		if alloc.calls != 0 {
			t.Errorf("allocator called %d times with explicit number", alloc.calls)
		}
	})

	t.Run("no-number leaves field absent", func(t *testing.T) {
		alloc := &fakeAllocator{next: "TST-001"}
		b := NewBuilder(testDefaults(), alloc)

		rec, err := b.Build(nil, Overrides{}, NumberPolicy{NoNumber: true})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if rec.InvoiceNumber != nil {
			t.Errorf("InvoiceNumber = %q, expected absent", *rec.InvoiceNumber)
		}
		if alloc.calls != 0 {
			t.Errorf("allocator called %d times with no-number", alloc.calls)
		}
	})

	t.Run("default allocates exactly once", func(t *testing.T) {
		alloc := &fakeAllocator{next: "TST-009"}
		b := NewBuilder(testDefaults(), alloc)

		rec, err := b.Build(nil, Overrides{}, NumberPolicy{})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if rec.InvoiceNumber == nil || *rec.InvoiceNumber != "TST-009" {
			t.Errorf("InvoiceNumber = %v, expected TST-009", rec.InvoiceNumber)
		}
		if alloc.calls != 1 {
			t.Errorf("allocator called %d times, expected 1", alloc.calls)
		}
	})

	t.Run("no-number wins over explicit", func(t *testing.T) {
		alloc := &fakeAllocator{next: "TST-001"}
		b := NewBuilder(testDefaults(), alloc)

		rec, err := b.Build(nil, Overrides{}, NumberPolicy{Explicit: "CUSTOM-1", NoNumber: true})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if rec.InvoiceNumber != nil {
			t.Errorf("InvoiceNumber = %q, expected absent", *rec.InvoiceNumber)
		}
	})
}

func TestFinalizeKeepsExistingNumber(t *testing.T) {
	alloc := &fakeAllocator{next: "TST-001"}
	b := NewBuilder(testDefaults(), alloc)

	// A record imported from JSON keeps its own number under the default
	// policy.
	rec := &Record{InvoiceNumber: strPtr("IMPORTED-3"), Title: "x"}
	if err := b.Finalize(rec, NumberPolicy{}); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if *rec.InvoiceNumber != "IMPORTED-3" {
		t.Errorf("InvoiceNumber = %q, imported number should be kept", *rec.InvoiceNumber)
	}
	if alloc.calls != 0 {
		t.Errorf("allocator called %d times, expected 0", alloc.calls)
	}

	// Without a number, the default policy allocates.
	rec = &Record{Title: "x"}
	if err := b.Finalize(rec, NumberPolicy{}); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if rec.InvoiceNumber == nil || *rec.InvoiceNumber != "TST-001" {
		t.Errorf("InvoiceNumber = %v, expected TST-001", rec.InvoiceNumber)
	}
}
