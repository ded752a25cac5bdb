package ports

import "errors"

// Repositories return these so use cases can tell a missing session from a
// lost optimistic write without knowing the backend.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
