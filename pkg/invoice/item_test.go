package invoice

import (
	"errors"
	"strings"
	"testing"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LineItem
	}{
		{
			"full item",
			"Consulting,Jan 1-15,10,150",
			LineItem{Service: "Consulting", Date: "Jan 1-15", Quantity: 10, Rate: 150},
		},
		{
			"empty date",
			"Design,,3,99.5",
			LineItem{Service: "Design", Date: "", Quantity: 3, Rate: 99.5},
		},
		{
			"service only",
			"Workshop",
			LineItem{Service: "Workshop", Quantity: 1, Rate: 0},
		},
		{
			"missing rate",
			"Workshop,Feb,2",
			LineItem{Service: "Workshop", Date: "Feb", Quantity: 2, Rate: 0},
		},
		{
			"empty quantity defaults to one",
			"Facilitation,Jan 2025,,375",
			LineItem{Service: "Facilitation", Date: "Jan 2025", Quantity: 1, Rate: 375},
		},
		{
			"rate with currency symbol",
			"Consulting,Jan,1,$150",
			LineItem{Service: "Consulting", Date: "Jan", Quantity: 1, Rate: 150},
		},
		{
			"rate with thousands separator",
			"Retainer,Q1,1,$1,500",
			LineItem{Service: "Retainer", Date: "Q1", Quantity: 1, Rate: 1500},
		},
		{
			"whitespace trimmed",
			" Audit , Mar 2025 , 4 , 200 ",
			LineItem{Service: "Audit", Date: "Mar 2025", Quantity: 4, Rate: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ParseItem(tt.input)
			if err != nil {
				t.Fatalf("ParseItem(%q) returned error: %v", tt.input, err)
			}
			if item != tt.expected {
				t.Errorf("ParseItem(%q) = %+v, expected %+v", tt.input, item, tt.expected)
			}
		})
	}
}

func TestParseItemMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad quantity", "Consulting,Jan,ten,150"},
		{"bad rate", "Consulting,Jan,10,lots"},
		{"negative quantity", "Consulting,Jan,-2,150"},
		{"negative rate", "Consulting,Jan,2,-150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItem(tt.input)
			if err == nil {
				t.Fatalf("ParseItem(%q) should have failed", tt.input)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ParseItem(%q) error is %T, expected *ValidationError", tt.input, err)
			}
			// The offending item string must be echoed back.
			if !strings.Contains(err.Error(), tt.input) {
				t.Errorf("error %q does not echo input %q", err.Error(), tt.input)
			}
		})
	}
}

func TestLineItemTotal(t *testing.T) {
	tests := []struct {
		name     string
		item     LineItem
		expected float64
	}{
		{"whole", LineItem{Quantity: 10, Rate: 150}, 1500},
		{"fractional", LineItem{Quantity: 3, Rate: 99.5}, 298.5},
		{"zero quantity", LineItem{Quantity: 0, Rate: 100}, 0},
		{"zero rate", LineItem{Quantity: 5, Rate: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Total(); got != tt.expected {
				t.Errorf("Total() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
