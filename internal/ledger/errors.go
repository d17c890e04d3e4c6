package ledger

import "errors"

var (
	// ErrInvalidInput marks a create call missing a required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when an update or delete target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProductNotFound is returned when a sale references a missing product.
	// This is the only enforced referential check.
	ErrProductNotFound = errors.New("product not found")

	// ErrStorageUnavailable wraps failures to read or write the ledger file.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
