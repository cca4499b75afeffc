package storage

import "github.com/google/uuid"

// NewID returns a fresh fact identifier.
func NewID() string {
	return uuid.NewString()
}
