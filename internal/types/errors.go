package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrUnimplemented = errors.New("storage backend not implemented")
	ErrNotFound      = errors.New("recipe not found")
	ErrDuplicateName = errors.New("recipe name already exists")
	ErrInvalidRecipe = errors.New("recipe failed schema validation")
)

// StorageError wraps errors that occur inside a storage backend. It is
// logged at the backend boundary and never propagated to the service,
// which sees only an empty collection or a false result.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s/%s): %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
