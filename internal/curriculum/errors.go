package curriculum

import "fmt"

// ErrMalformedDocument indicates the raw curriculum document does not
// have the required shape. Fatal: the tracker cannot start without a
// valid progression.
type ErrMalformedDocument struct {
	Err error
}

func (e *ErrMalformedDocument) Error() string {
	return fmt.Sprintf("malformed curriculum document: %v", e.Err)
}

func (e *ErrMalformedDocument) Unwrap() error { return e.Err }
