package invoice

import (
	"strconv"
	"strings"
)

// ParseItem parses the compact item form "service,date,quantity,rate" into
// a LineItem. Missing trailing fields default to empty/zero; an empty
// quantity means 1 and an empty rate means 0. The rate may carry a leading
// currency symbol and thousands separators ("$1,500").
func ParseItem(s string) (LineItem, error) {
	parts := strings.SplitN(s, ",", 4)
	fields := make([]string, 4)
	for i, p := range parts {
		fields[i] = strings.TrimSpace(p)
	}

	item := LineItem{
		Service:  fields[0],
		Date:     fields[1],
		Quantity: 1,
	}

	if fields[2] != "" {
		qty, err := strconv.Atoi(fields[2])
		if err != nil {
			return LineItem{}, &ValidationError{Field: "item quantity", Input: s, Msg: "quantity must be an integer"}
		}
		if qty < 0 {
			return LineItem{}, &ValidationError{Field: "item quantity", Input: s, Msg: "quantity must not be negative"}
		}
		item.Quantity = qty
	}

	if fields[3] != "" {
		raw := strings.NewReplacer("$", "", ",", "").Replace(fields[3])
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return LineItem{}, &ValidationError{Field: "item rate", Input: s, Msg: "rate must be a number"}
		}
		if rate < 0 {
			return LineItem{}, &ValidationError{Field: "item rate", Input: s, Msg: "rate must not be negative"}
		}
		item.Rate = rate
	}

	return item, nil
}
