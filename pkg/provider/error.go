package provider

import (
	"fmt"
	"strings"
)

// Error is returned when a provider fails to produce facts.
type Error struct {
	ProviderID string
	Err        error
}

func (e Error) Error() string {
	return fmt.Sprintf("provider %q: %v", e.ProviderID, e.Err)
}

func (e Error) Unwrap() error {
	return e.Err
}

// InvalidError names every identifier that did not resolve to a provider.
type InvalidError struct {
	IDs []string
}

func (e InvalidError) Error() string {
	return fmt.Sprintf("some providers are invalid: %s (supported: %s)",
		strings.Join(e.IDs, ", "), strings.Join(Available(), ", "))
}
