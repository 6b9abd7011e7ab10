package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Paging errors
	ErrInvalidPageRequest = errors.New("page number must be at least 1 and page size positive")
	ErrInvalidPage        = errors.New("page index cannot be negative")
	ErrInvalidPageSize    = errors.New("page size must be positive")

	// Lookup errors
	ErrInvalidProductID = errors.New("product id must be a positive integer")

	// Record errors
	ErrNegativePrice = errors.New("product price cannot be negative")
	ErrNegativeStock = errors.New("product stock cannot be negative")
)

// FetchError reports a transport or remote failure at the data provider boundary.
type FetchError struct {
	Op  string
	Err error
}

// NewFetchError wraps err as a FetchError for the given operation.
func NewFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err carries a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
