package domain

import (
	"errors"
	"time"
)

// Session is one refresh session: a live refresh token bound to a shopper and
// the device it was issued to. The token value itself is the identity of the
// row; rotation replaces the row rather than updating it.
type Session struct {
	Token     string
	ShopperID string
	DeviceID  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Validate validates the session for persistence. Returns an error describing the first validation failure.
func (s *Session) Validate() error {
	if s.Token == "" {
		return errors.New("token is required")
	}
	if s.ShopperID == "" {
		return errors.New("shopper id is required")
	}
	if s.DeviceID == "" {
		return errors.New("device id is required")
	}
	return nil
}

// Expired reports whether the session's expiry is at or before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
