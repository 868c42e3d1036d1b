package store

import "fmt"

// ErrStoreUnavailable indicates the persistence medium cannot be used.
// Callers should degrade to an in-memory, non-persistent session.
type ErrStoreUnavailable struct {
	Op  string
	Err error
}

func (e *ErrStoreUnavailable) Error() string {
	return fmt.Sprintf("progress store unavailable (%s): %v", e.Op, e.Err)
}

func (e *ErrStoreUnavailable) Unwrap() error { return e.Err }

// ErrImport indicates user-supplied import text could not be parsed as a
// progress record. The store is left untouched. This is the only path
// that surfaces a parse error: corrupt *stored* records read as empty.
type ErrImport struct {
	Err error
}

func (e *ErrImport) Error() string {
	return fmt.Sprintf("invalid progress import: %v", e.Err)
}

func (e *ErrImport) Unwrap() error { return e.Err }
