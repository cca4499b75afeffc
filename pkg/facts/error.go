package facts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotQueued reports a provider the harvest pool refused to schedule.
var ErrNotQueued = errors.New("harvest queue full, provider skipped")

// UpdateError aggregates every failure of an update pass.
type UpdateError struct {
	Errors []error
}

func (e *UpdateError) Error() string {
	if len(e.Errors) == 1 {
		return "update failed: " + e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("update failed with %d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *UpdateError) Unwrap() []error {
	return e.Errors
}
