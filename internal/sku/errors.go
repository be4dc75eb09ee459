package sku

import "errors"

// ErrInvalidInput is wrapped by every validation failure of Bind and
// SelectVariant, so callers can match the whole class with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Validation errors. Each wraps ErrInvalidInput.
var (
	ErrEmptyCatalog           = invalid("catalog has no variants")
	ErrAttributeCountMismatch = invalid("attribute count mismatch")
	ErrAttributeOrderMismatch = invalid("attribute order mismatch")
	ErrEmptyAttribute         = invalid("attribute name or value is empty")
	ErrDuplicateAttribute     = invalid("attribute name repeated within a variant")
	ErrNegativeStock          = invalid("stock quantity is negative")
	ErrUnknownValue           = invalid("value not offered by group")
	ErrPositionOutOfRange     = invalid("group position out of range")
)

var (
	// ErrNotBound is returned by mutations on a selector with no catalog.
	ErrNotBound = errors.New("no variants bound")

	// ErrVariantNotFound is returned when a variant id is not in the bound list.
	ErrVariantNotFound = errors.New("variant not found")
)

type invalidError struct {
	msg string
}

func invalid(msg string) error {
	return &invalidError{msg: msg}
}

func (e *invalidError) Error() string { return e.msg }

func (e *invalidError) Unwrap() error { return ErrInvalidInput }
