package helpers

import "github.com/google/uuid"

// NewActivationToken returns a random UUIDv4 string used as a single-use activation credential.
func NewActivationToken() string {
	return uuid.NewString()
}
