package invoice

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced client key does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrCorrupt indicates a persisted store file exists but does not parse as
// valid JSON of the expected shape. Callers must abort rather than reset
// the store.
var ErrCorrupt = errors.New("data corrupt")

// ValidationError indicates malformed or missing user input. The offending
// input is echoed back so the caller can correct it.
type ValidationError struct {
	Field string
	Input string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Msg)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
