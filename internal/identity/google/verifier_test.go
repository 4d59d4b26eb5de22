package google

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/api/idtoken"
)

func TestVerify_ValidToken(t *testing.T) {
	original := googleValidate
	defer func() { googleValidate = original }()

	googleValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good-token" {
			t.Errorf("token = %q", token)
		}
		if audience != "client-123" {
			t.Errorf("audience = %q, want client-123", audience)
		}
		return &idtoken.Payload{
			Claims: map[string]interface{}{
				"email": "Shopper@Example.com",
				"name":  "Pat Shopper",
			},
		}, nil
	}

	v := NewTokenVerifier("client-123", 5*time.Second)
	id, err := v.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.Email != "shopper@example.com" {
		t.Errorf("Email = %q, want lowercased", id.Email)
	}
	if id.Name != "Pat Shopper" {
		t.Errorf("Name = %q", id.Name)
	}
}

func TestVerify_TimeoutBoundsCall(t *testing.T) {
	original := googleValidate
	defer func() { googleValidate = original }()

	googleValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		deadline, ok := ctx.Deadline()
		if !ok {
			t.Error("validation context has no deadline")
		} else if remaining := time.Until(deadline); remaining > 2*time.Second {
			t.Errorf("deadline %v away, want at most 2s", remaining)
		}
		return &idtoken.Payload{Claims: map[string]interface{}{"email": "a@b.c"}}, nil
	}

	v := NewTokenVerifier("client-123", 2*time.Second)
	if _, err := v.Verify(context.Background(), "tok"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerify_ValidationFailure(t *testing.T) {
	original := googleValidate
	defer func() { googleValidate = original }()

	googleValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return nil, errors.New("signature mismatch")
	}

	v := NewTokenVerifier("client-123", time.Second)
	if _, err := v.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidIDToken) {
		t.Errorf("err = %v, want ErrInvalidIDToken", err)
	}
}

func TestVerify_MissingEmail(t *testing.T) {
	original := googleValidate
	defer func() { googleValidate = original }()

	googleValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Claims: map[string]interface{}{"name": "No Email"}}, nil
	}

	v := NewTokenVerifier("client-123", time.Second)
	if _, err := v.Verify(context.Background(), "tok"); !errors.Is(err, ErrInvalidIDToken) {
		t.Errorf("err = %v, want ErrInvalidIDToken", err)
	}
}

func TestVerify_BlankCredential(t *testing.T) {
	called := false
	original := googleValidate
	defer func() { googleValidate = original }()
	googleValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		called = true
		return nil, nil
	}

	v := NewTokenVerifier("client-123", time.Second)
	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrInvalidIDToken) {
		t.Errorf("err = %v, want ErrInvalidIDToken", err)
	}
	if called {
		t.Error("blank credential must not reach Google")
	}
}
