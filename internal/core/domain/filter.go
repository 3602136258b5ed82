package domain

import "fmt"

// Default filter bounds, inclusive.
const (
	DefaultMinLength = 50
	DefaultMaxLength = 10000
)

// FilterOptions is the inclusive character-count window a document must fall in to be kept.
type FilterOptions struct {
	MinLength int `json:"min_length"`
	MaxLength int `json:"max_length"`
}

// DefaultFilterOptions returns the 50..10000 window.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// Validate rejects negative bounds and inverted windows.
func (o FilterOptions) Validate() error {
	if o.MinLength < 0 || o.MaxLength < 0 {
		return fmt.Errorf("%w: bounds must be non-negative (min=%d, max=%d)", ErrInvalidRange, o.MinLength, o.MaxLength)
	}
	if o.MinLength > o.MaxLength {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidRange, o.MinLength, o.MaxLength)
	}
	return nil
}

// Accepts returns true if a text of n characters falls inside the window.
func (o FilterOptions) Accepts(n int) bool {
	return o.MinLength <= n && n <= o.MaxLength
}
