package storage

import (
	"errors"
	"strings"
)

// ErrEmptyFact is returned for a fact whose text is blank.
var ErrEmptyFact = errors.New("empty fact text")

// Error is returned when the underlying store cannot be opened, migrated or
// queried.
type Error struct {
	// Op is the failing operation, e.g. "open", "migrate", "insert".
	Op string

	Err error
}

func (e Error) Error() string {
	if e.Err == nil {
		return "storage " + e.Op + " failed"
	}

	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Wrap wraps err as an Error for op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return Error{Op: op, Err: err}
}

// ValidText returns ErrEmptyFact, wrapped for the insert operation, when
// text is blank.
func ValidText(text string) error {
	if strings.TrimSpace(text) == "" {
		return Wrap("insert", ErrEmptyFact)
	}
	return nil
}

// Errs returns a per-item error slice of length n filled with err.
func Errs(n int, err error) []error {
	errs := make([]error, n)
	for i := range errs {
		errs[i] = err
	}
	return errs
}
