package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adamluckydo/invoice-generator/pkg/invoice"
)

// counterState is the on-disk shape of the sequence counter.
type counterState struct {
	LastNumber int `json:"last_number"`
}

// Counter is the durable monotonic source of invoice numbers. Identifiers
// are "<prefix>-NNN", zero-padded to at least three digits.
type Counter struct {
	paths  *Paths
	prefix string
}

// NewCounter returns a Counter using the given identifier prefix.
func NewCounter(paths *Paths, prefix string) *Counter {
	return &Counter{paths: paths, prefix: prefix}
}

// Peek returns the identifier the next Allocate call would produce,
// without mutating any state. A missing counter file reads as zero.
func (c *Counter) Peek() (string, error) {
	state, err := c.read()
	if err != nil {
		return "", err
	}
	return c.format(state.LastNumber + 1), nil
}

// Allocate increments the counter, persists it, and returns the new
// identifier. The state file is created at zero when absent.
func (c *Counter) Allocate() (string, error) {
	state, err := c.read()
	if err != nil {
		return "", err
	}

	state.LastNumber++
	if err := c.write(state); err != nil {
		return "", err
	}
	return c.format(state.LastNumber), nil
}

func (c *Counter) read() (counterState, error) {
	data, err := os.ReadFile(c.paths.CounterFile())
	if err != nil {
		if os.IsNotExist(err) {
			return counterState{}, nil
		}
		return counterState{}, fmt.Errorf("failed to read counter: %w", err)
	}

	var state counterState
	if err := json.Unmarshal(data, &state); err != nil {
		return counterState{}, fmt.Errorf("counter %s: %w: %v", c.paths.CounterFile(), invoice.ErrCorrupt, err)
	}
	if state.LastNumber < 0 {
		return counterState{}, fmt.Errorf("counter %s: %w: negative last_number %d", c.paths.CounterFile(), invoice.ErrCorrupt, state.LastNumber)
	}
	return state, nil
}

func (c *Counter) write(state counterState) error {
	if err := c.paths.EnsureDataDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal counter: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(c.paths.CounterFile(), data, 0644); err != nil {
		return fmt.Errorf("failed to write counter: %w", err)
	}
	return nil
}

// format zero-pads to three digits; wider values keep their natural width.
func (c *Counter) format(n int) string {
	return fmt.Sprintf("%s-%03d", c.prefix, n)
}
