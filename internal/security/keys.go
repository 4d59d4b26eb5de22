package security

import (
	"errors"
	"strings"
)

// MinHMACKeySize is the minimum HS256 key length in bytes (256 bits).
const MinHMACKeySize = 32

// ErrEmptySecret is returned when the configured JWT secret is empty or blank.
var ErrEmptySecret = errors.New("jwt secret is empty")

// SigningKey derives the HS256 signing key from the configured secret.
// Secrets of MinHMACKeySize bytes or more are used as-is. Shorter secrets are
// zero-padded to MinHMACKeySize so the same secret always yields the same key.
// Zero-padding adds no entropy; secrets should be at least 32 bytes.
func SigningKey(secret string) ([]byte, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	key := []byte(secret)
	if len(key) >= MinHMACKeySize {
		return key, nil
	}
	padded := make([]byte, MinHMACKeySize)
	copy(padded, key)
	return padded, nil
}
