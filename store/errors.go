package store

import (
	"errors"
	"fmt"

	"github.com/ndesc/ndesc-api/utils"
)

// Domain errors are expected outcomes of store operations; handlers map them
// directly to response codes.
var (
	// ErrBadSelector means neither a username nor a session key was given.
	ErrBadSelector = errors.New("store: no selector given")
	// ErrConflict means a record already exists under the requested key.
	ErrConflict = errors.New("store: record already exists")
	// ErrForbidden means the submitted password did not match the stored hash.
	ErrForbidden = errors.New("store: password mismatch")
	// ErrNotFound means no record exists for the requested key.
	ErrNotFound = errors.New("store: record not found")
)

// UnavailableError wraps an unexpected backing-store failure with the stable
// tracking tag of the failing operation. The wrapped detail is for the
// operator only; callers surface just the tag.
type UnavailableError struct {
	Tag string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store: %s unavailable: %v", e.Tag, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// unavailable reports err to the operator under tag and returns the wrapped
// error for the caller.
func unavailable(tag string, err error) error {
	utils.Report(tag, err)
	return &UnavailableError{Tag: tag, Err: err}
}
