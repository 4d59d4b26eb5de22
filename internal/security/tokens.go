package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, unsigned, or fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptyShopperID is returned when a token is requested for a blank shopper id.
	ErrEmptyShopperID = errors.New("shopper id must not be empty")
)

// Claims is the fixed claim set carried by access and refresh tokens.
// Access tokens carry the device id they were issued to; refresh tokens do not.
// Device binding for refresh tokens lives in the session record, not the token.
type Claims struct {
	DeviceID string `json:"deviceId,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates HS256-signed access and refresh tokens.
// The signing key is fixed at construction and read-only for the process lifetime.
type TokenCodec struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenCodec returns a TokenCodec signing with key (see SigningKey) and the given lifetimes.
func NewTokenCodec(key []byte, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		key:        key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// IssueAccessToken issues a short-lived access token with subject shopperID.
// deviceID is embedded as a claim when non-blank.
func (c *TokenCodec) IssueAccessToken(shopperID, deviceID string) (string, error) {
	if strings.TrimSpace(shopperID) == "" {
		return "", ErrEmptyShopperID
	}
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shopperID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}
	if strings.TrimSpace(deviceID) != "" {
		claims.DeviceID = deviceID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// IssueRefreshToken issues a long-lived refresh token with subject shopperID.
func (c *TokenCodec) IssueRefreshToken(shopperID string) (string, error) {
	if strings.TrimSpace(shopperID) == "" {
		return "", ErrEmptyShopperID
	}
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shopperID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// ExtractClaims parses and verifies tokenStr and returns its claims.
// Any parse, signature, or validity failure (including expiry) yields ErrInvalidToken.
func (c *TokenCodec) ExtractClaims(tokenStr string) (*Claims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, ErrInvalidToken
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, c.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractSubject returns the shopper id a verified token was issued for.
func (c *TokenCodec) ExtractSubject(tokenStr string) (string, error) {
	claims, err := c.ExtractClaims(tokenStr)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// IsExpired reports whether tokenStr is past its expiry. Fail-closed: any
// parse or signature failure counts as expired.
func (c *TokenCodec) IsExpired(tokenStr string) bool {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, c.keyFunc)
	if err != nil || !token.Valid {
		return true
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(c.now())
}

// IsValidForSubject reports whether tokenStr verifies, is not expired, and was
// issued for shopperID.
func (c *TokenCodec) IsValidForSubject(tokenStr, shopperID string) bool {
	if shopperID == "" {
		return false
	}
	sub, err := c.ExtractSubject(tokenStr)
	if err != nil {
		return false
	}
	return sub == shopperID && !c.IsExpired(tokenStr)
}

// RefreshTTL returns the configured refresh token lifetime.
func (c *TokenCodec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

// AccessTTL returns the configured access token lifetime.
func (c *TokenCodec) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *TokenCodec) keyFunc(*jwt.Token) (interface{}, error) {
	return c.key, nil
}
