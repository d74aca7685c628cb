package ledger

import (
	"fmt"

	"github.com/diewo77/pedidos-ledger/internal/validation"
)

// ValidationError reports bad caller input. Always recoverable: the caller is
// expected to fix the fields named in Violations and retry.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", map[string]string(e.Violations))
}

// NotFoundError reports a reference to an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StorageError wraps an underlying store failure. It is fatal to the single
// operation in progress; the ledger never retries internally.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
