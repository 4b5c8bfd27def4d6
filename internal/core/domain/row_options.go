package domain

import "fmt"

// RowOptions controls which rows a fetch returns and in what order.
// The zero value returns every row in sheet order.
type RowOptions struct {
	// Offset skips this many matching rows.
	Offset int

	// Limit caps the number of rows returned. Zero means no limit.
	Limit int

	// OrderBy sorts by the named column before paging.
	OrderBy string

	// Reverse reverses the resulting order.
	Reverse bool

	// Query is a structured-query filter such as `price = 202.39`.
	Query string
}

// Validate checks the options for obviously invalid values.
func (o RowOptions) Validate() error {
	if o.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	if o.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	return nil
}

// Page applies Offset and Limit to n items and returns the slice bounds.
func (o RowOptions) Page(n int) (start, end int) {
	start = o.Offset
	if start > n {
		start = n
	}
	end = n
	if o.Limit > 0 && start+o.Limit < end {
		end = start + o.Limit
	}
	return start, end
}
