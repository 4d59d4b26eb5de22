// Package identity defines how externally issued credentials are turned into
// verified identities. Providers live in subpackages.
package identity

import "context"

// Identity is the identity asserted by a verified external credential.
type Identity struct {
	Email string
	Name  string
}

// Verifier checks an externally issued credential (e.g. a Google ID token)
// and returns the identity it asserts. Implementations must bound the time
// spent on any remote calls.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}
