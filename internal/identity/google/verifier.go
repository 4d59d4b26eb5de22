// Package google verifies Google ID tokens against Google's public keys.
package google

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"supershopcart/backend/internal/identity"
)

// googleValidate is swapped in tests to avoid network calls.
var googleValidate = idtoken.Validate

// ErrInvalidIDToken is returned when a Google ID token fails verification or
// lacks a usable email claim.
var ErrInvalidIDToken = errors.New("invalid google id token")

// TokenVerifier verifies Google ID tokens. Each verification is bounded by
// timeout; key fetches go through the idtoken package's cached client.
type TokenVerifier struct {
	audience string
	timeout  time.Duration
}

// NewTokenVerifier returns a verifier expecting tokens issued for audience
// (the OAuth client ID). A non-positive timeout disables the per-call bound.
func NewTokenVerifier(audience string, timeout time.Duration) *TokenVerifier {
	return &TokenVerifier{audience: audience, timeout: timeout}
}

// Verify validates credential and returns the identity it asserts.
func (v *TokenVerifier) Verify(ctx context.Context, credential string) (*identity.Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrInvalidIDToken
	}

	validateCtx := ctx
	if v.timeout > 0 {
		var cancel context.CancelFunc
		validateCtx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	payload, err := googleValidate(validateCtx, credential, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidIDToken)
	}
	name, _ := payload.Claims["name"].(string)

	return &identity.Identity{
		Email: strings.ToLower(email),
		Name:  name,
	}, nil
}
