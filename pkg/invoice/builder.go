package invoice

import (
	"fmt"
	"time"

	"github.com/adamluckydo/invoice-generator/pkg/config"
)

// Allocator hands out invoice numbers. Implemented by storage.Counter.
type Allocator interface {
	Allocate() (string, error)
}

// Overrides carries explicit field values supplied by the caller. A nil
// pointer means "not supplied"; merging is strictly defaults < client
// profile < overrides, so precedence stays auditable.
type Overrides struct {
	Title         *string
	Date          *string
	ToName        *string
	ToCompany     *string
	FromName      *string
	FromEmail     *string
	Items         []LineItem
	PaymentMethod *string
	Notes         *string
}

// NumberPolicy selects how the invoice number is resolved. Exactly one
// mode applies, and it is resolved after all other fields are merged.
type NumberPolicy struct {
	// Explicit is used verbatim when non-empty.
	Explicit string
	// NoNumber leaves the number absent.
	NoNumber bool
}

// Builder assembles canonical invoice records from layered inputs.
type Builder struct {
	defaults config.Defaults
	counter  Allocator
}

// NewBuilder returns a Builder over the given defaults and number source.
func NewBuilder(defaults config.Defaults, counter Allocator) *Builder {
	return &Builder{defaults: defaults, counter: counter}
}

// Empty returns a record with only the defaults filled in: sender
// identity, payment method, and today's date as "Month DD, YYYY".
func (b *Builder) Empty() *Record {
	return &Record{
		Date: time.Now().Format("January 02, 2006"),
		From: Party{
			Name:  b.defaults.FromName,
			Email: b.defaults.FromEmail,
		},
		PaymentMethod: b.defaults.PaymentMethod,
	}
}

// Build produces a canonical record. profile, when non-nil, fills the
// recipient name and company; ov then overrides any field it supplies;
// the number policy is resolved last, calling Allocate exactly once when
// neither an explicit number nor the no-number flag was given.
func (b *Builder) Build(profile *Recipient, ov Overrides, policy NumberPolicy) (*Record, error) {
	rec := b.Empty()

	if profile != nil {
		rec.To.Name = profile.Name
		rec.To.Company = profile.Company
	}

	applyOverrides(rec, ov)

	if err := b.resolveNumber(rec, policy); err != nil {
		return nil, err
	}

	return rec, nil
}

// Finalize applies the number policy to an already-assembled record, such
// as one loaded from a JSON import. A number already on the record is kept
// unless the policy says otherwise.
func (b *Builder) Finalize(rec *Record, policy NumberPolicy) error {
	return b.resolveNumber(rec, policy)
}

func (b *Builder) resolveNumber(rec *Record, policy NumberPolicy) error {
	switch {
	case policy.NoNumber:
		rec.InvoiceNumber = nil
	case policy.Explicit != "":
		n := policy.Explicit
		rec.InvoiceNumber = &n
	case rec.InvoiceNumber == nil || *rec.InvoiceNumber == "":
		n, err := b.counter.Allocate()
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}
		rec.InvoiceNumber = &n
	}
	return nil
}

func applyOverrides(rec *Record, ov Overrides) {
	if ov.Title != nil {
		rec.Title = *ov.Title
	}
	if ov.Date != nil {
		rec.Date = *ov.Date
	}
	if ov.ToName != nil {
		rec.To.Name = *ov.ToName
	}
	if ov.ToCompany != nil {
		rec.To.Company = *ov.ToCompany
	}
	if ov.FromName != nil {
		rec.From.Name = *ov.FromName
	}
	if ov.FromEmail != nil {
		rec.From.Email = *ov.FromEmail
	}
	if ov.Items != nil {
		rec.Items = ov.Items
	}
	if ov.PaymentMethod != nil {
		rec.PaymentMethod = *ov.PaymentMethod
	}
	if ov.Notes != nil {
		rec.Notes = *ov.Notes
	}
}
