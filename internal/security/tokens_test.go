package security

import (
	"strings"
	"testing"
	"time"
)

func testCodec(t *testing.T, secret string) *TokenCodec {
	t.Helper()
	key, err := SigningKey(secret)
	if err != nil {
		t.Fatalf("SigningKey: %v", err)
	}
	return NewTokenCodec(key, time.Hour, 720*time.Hour)
}

// tamper flips one character in the middle of the signature segment.
func tamper(t *testing.T, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	sig := []byte(parts[2])
	i := len(sig) / 2
	if sig[i] == 'A' {
		sig[i] = 'B'
	} else {
		sig[i] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := testCodec(t, "short")

	token, err := codec.IssueAccessToken("u1", "dA")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	sub, err := codec.ExtractSubject(token)
	if err != nil {
		t.Fatalf("ExtractSubject: %v", err)
	}
	if sub != "u1" {
		t.Errorf("subject = %q, want %q", sub, "u1")
	}

	claims, err := codec.ExtractClaims(token)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if claims.DeviceID != "dA" {
		t.Errorf("deviceId = %q, want %q", claims.DeviceID, "dA")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("claims missing exp or iat")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("exp-iat = %v, want 1h", got)
	}

	if codec.IsExpired(token) {
		t.Error("freshly issued token reported expired")
	}
	if !codec.IsValidForSubject(token, "u1") {
		t.Error("token should be valid for its own subject")
	}
	if codec.IsValidForSubject(token, "u2") {
		t.Error("token must not be valid for a different subject")
	}
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec := testCodec(t, "short")

	token, err := codec.IssueAccessToken("u1", "dA")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	bad := tamper(t, token)

	if _, err := codec.ExtractSubject(bad); err != ErrInvalidToken {
		t.Errorf("ExtractSubject err = %v, want ErrInvalidToken", err)
	}
	if !codec.IsExpired(bad) {
		t.Error("tampered token must be reported expired (fail closed)")
	}
	if codec.IsValidForSubject(bad, "u1") {
		t.Error("tampered token must not be valid")
	}
}

func TestTokenCodec_ExpiredToken(t *testing.T) {
	key, err := SigningKey("short")
	if err != nil {
		t.Fatalf("SigningKey: %v", err)
	}
	codec := NewTokenCodec(key, time.Hour, 720*time.Hour)
	codec.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Hour) }

	token, err := codec.IssueAccessToken("u1", "dA")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	verifier := NewTokenCodec(key, time.Hour, 720*time.Hour)
	if !verifier.IsExpired(token) {
		t.Error("token issued in the past must be expired")
	}
	if _, err := verifier.ExtractClaims(token); err != ErrInvalidToken {
		t.Errorf("ExtractClaims err = %v, want ErrInvalidToken", err)
	}
	if verifier.IsValidForSubject(token, "u1") {
		t.Error("expired token must not be valid for its subject")
	}
}

func TestTokenCodec_ShortSecretDeterministic(t *testing.T) {
	a := testCodec(t, "short")
	b := testCodec(t, "short")

	token, err := a.IssueAccessToken("u1", "dA")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	sub, err := b.ExtractSubject(token)
	if err != nil {
		t.Fatalf("a codec built from the same short secret must verify the token: %v", err)
	}
	if sub != "u1" {
		t.Errorf("subject = %q, want %q", sub, "u1")
	}
}

func TestTokenCodec_RefreshTokenHasNoDevice(t *testing.T) {
	codec := testCodec(t, "short")

	token, err := codec.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	claims, err := codec.ExtractClaims(token)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if claims.DeviceID != "" {
		t.Errorf("refresh token deviceId = %q, want empty", claims.DeviceID)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 720*time.Hour {
		t.Errorf("exp-iat = %v, want 720h", got)
	}
}

func TestTokenCodec_EmptyShopperID(t *testing.T) {
	codec := testCodec(t, "short")

	if _, err := codec.IssueAccessToken("", "dA"); err != ErrEmptyShopperID {
		t.Errorf("IssueAccessToken err = %v, want ErrEmptyShopperID", err)
	}
	if _, err := codec.IssueRefreshToken("  "); err != ErrEmptyShopperID {
		t.Errorf("IssueRefreshToken err = %v, want ErrEmptyShopperID", err)
	}
}

func TestTokenCodec_GarbageInput(t *testing.T) {
	codec := testCodec(t, "short")

	for _, in := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		if _, err := codec.ExtractSubject(in); err != ErrInvalidToken {
			t.Errorf("ExtractSubject(%q) err = %v, want ErrInvalidToken", in, err)
		}
		if !codec.IsExpired(in) {
			t.Errorf("IsExpired(%q) = false, want true", in)
		}
		if codec.IsValidForSubject(in, "u1") {
			t.Errorf("IsValidForSubject(%q) = true, want false", in)
		}
	}
}
