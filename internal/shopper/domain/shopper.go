package domain

import (
	"errors"
	"time"
)

// Shopper is the core account entity. A shopper may be signed in on many
// devices at once; device state lives in session records, not here.
type Shopper struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Validate validates the shopper for persistence. Returns an error describing the first validation failure.
func (s *Shopper) Validate() error {
	if s.Email == "" {
		return errors.New("email is required")
	}
	return nil
}
