package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"supershopcart/backend/internal/audit"
	"supershopcart/backend/internal/identity"
	"supershopcart/backend/internal/security"
	sessiondomain "supershopcart/backend/internal/session/domain"
	shopperdomain "supershopcart/backend/internal/shopper/domain"
)

// Sentinel errors for the auth service; the handler maps them to HTTP statuses.
var (
	ErrMissingCredential = errors.New("missing google credential")
	ErrMissingEmail      = errors.New("missing email")
	ErrMissingDeviceID   = errors.New("missing device id")
	ErrMissingShopperID  = errors.New("missing shopper id")

	ErrInvalidGoogleToken       = errors.New("invalid google token")
	ErrInvalidRefreshToken      = errors.New("invalid refresh token")
	ErrRefreshExpiredOrMismatch = errors.New("refresh token expired or device mismatch")
	ErrInvalidLogoutRequest     = errors.New("invalid logout request")
	ErrShopperNotFound          = errors.New("shopper not found")

	// ErrLoginFailed wraps persistence failures during login so the handler
	// can distinguish them from bad credentials.
	ErrLoginFailed = errors.New("failed to complete login")
)

// AuthResult holds the token pair minted by a successful login or refresh.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	ShopperID    string
	Email        string
	Name         string
}

// ShopperRepo is the minimal shopper repository needed by the auth service.
type ShopperRepo interface {
	GetByID(ctx context.Context, id string) (*shopperdomain.Shopper, error)
	GetByEmail(ctx context.Context, email string) (*shopperdomain.Shopper, error)
	Create(ctx context.Context, s *shopperdomain.Shopper) error
	Delete(ctx context.Context, id string) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	GetByToken(ctx context.Context, token string) (*sessiondomain.Session, error)
	Create(ctx context.Context, s *sessiondomain.Session) error
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByShopperAndDevice(ctx context.Context, shopperID, deviceID string) error
	DeleteAllByShopper(ctx context.Context, shopperID string) error
}

// AuthService implements Google login, refresh rotation, and logout.
//
// Login is a small saga: verify identity, find or create the account, then
// replace the device's session. If session persistence fails after a NEW
// account was created, the account is deleted again so retries do not leave
// orphans. A failed compensation is logged and never masks the primary error.
type AuthService struct {
	shoppers ShopperRepo
	sessions SessionRepo
	verifier identity.Verifier
	tokens   *security.TokenCodec
	auditor  audit.AuditLogger
}

// NewAuthService returns an AuthService with the given dependencies.
// auditor may be nil; then no audit events are written.
func NewAuthService(
	shoppers ShopperRepo,
	sessions SessionRepo,
	verifier identity.Verifier,
	tokens *security.TokenCodec,
	auditor audit.AuditLogger,
) *AuthService {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &AuthService{
		shoppers: shoppers,
		sessions: sessions,
		verifier: verifier,
		tokens:   tokens,
		auditor:  auditor,
	}
}

// LoginWithGoogle verifies the Google ID token and signs the shopper in on
// deviceID, creating the account on first login.
func (s *AuthService) LoginWithGoogle(ctx context.Context, googleToken, deviceID string) (*AuthResult, error) {
	if strings.TrimSpace(googleToken) == "" {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMissingDeviceID
	}
	id, err := s.verifier.Verify(ctx, googleToken)
	if err != nil {
		s.auditor.LogEvent(ctx, "", audit.ActionLoginFailure, "google verification failed")
		return nil, ErrInvalidGoogleToken
	}
	return s.login(ctx, id.Email, id.Name, deviceID, audit.ActionLoginSuccess)
}

// DevLogin signs in (or creates) an account for email without an external
// credential. Only reachable when the dev endpoint is enabled.
func (s *AuthService) DevLogin(ctx context.Context, email, deviceID string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrMissingEmail
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMissingDeviceID
	}
	name := email
	if i := strings.Index(email, "@"); i > 0 {
		name = email[:i]
	}
	return s.login(ctx, email, name, deviceID, audit.ActionDevLogin)
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// access/refresh pair is issued for the same shopper and device. A token can
// be consumed exactly once; a concurrent refresh with the same token loses.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, deviceID string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidRefreshToken
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMissingDeviceID
	}

	sess, err := s.sessions.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrInvalidRefreshToken
	}

	now := time.Now().UTC()
	if sess.Expired(now) {
		if _, delErr := s.sessions.DeleteByToken(ctx, refreshToken); delErr != nil {
			log.Printf("auth: failed to drop expired session: %v", delErr)
		}
		return nil, ErrRefreshExpiredOrMismatch
	}
	if sess.DeviceID != deviceID {
		return nil, ErrRefreshExpiredOrMismatch
	}
	if !s.tokens.IsValidForSubject(refreshToken, sess.ShopperID) {
		return nil, ErrInvalidRefreshToken
	}

	// Consume the old token first; the delete is the rotation's commit point.
	deleted, err := s.sessions.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrInvalidRefreshToken
	}

	shopper, err := s.shoppers.GetByID(ctx, sess.ShopperID)
	if err != nil {
		return nil, err
	}
	if shopper == nil {
		return nil, ErrInvalidRefreshToken
	}

	result, err := s.issueSession(ctx, shopper, deviceID)
	if err != nil {
		return nil, err
	}
	s.auditor.LogEvent(ctx, shopper.ID, audit.ActionRefresh, "device="+deviceID)
	return result, nil
}

// Logout ends the shopper's session on one device. The presented refresh
// token must exist and be bound to deviceID.
func (s *AuthService) Logout(ctx context.Context, refreshToken, deviceID string) error {
	if strings.TrimSpace(refreshToken) == "" || strings.TrimSpace(deviceID) == "" {
		return ErrInvalidLogoutRequest
	}
	sess, err := s.sessions.GetByToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if sess == nil || sess.DeviceID != deviceID {
		return ErrInvalidLogoutRequest
	}
	if err := s.sessions.DeleteByShopperAndDevice(ctx, sess.ShopperID, deviceID); err != nil {
		return err
	}
	s.auditor.LogEvent(ctx, sess.ShopperID, audit.ActionLogout, "device="+deviceID)
	return nil
}

// LogoutAll ends every session the shopper holds, on all devices.
// Best-effort: a failed delete is logged and the call still succeeds, since
// access tokens already in the wild stay valid until they expire anyway.
func (s *AuthService) LogoutAll(ctx context.Context, shopperID string) error {
	if strings.TrimSpace(shopperID) == "" {
		return ErrMissingShopperID
	}
	if err := s.sessions.DeleteAllByShopper(ctx, shopperID); err != nil {
		log.Printf("auth: logout-all for shopper %s failed: %v", shopperID, err)
	}
	s.auditor.LogEvent(ctx, shopperID, audit.ActionLogoutAll, "")
	return nil
}

// GetShopper returns the account for shopperID.
func (s *AuthService) GetShopper(ctx context.Context, shopperID string) (*shopperdomain.Shopper, error) {
	if strings.TrimSpace(shopperID) == "" {
		return nil, ErrMissingShopperID
	}
	shopper, err := s.shoppers.GetByID(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	if shopper == nil {
		return nil, ErrShopperNotFound
	}
	return shopper, nil
}

func (s *AuthService) login(ctx context.Context, email, name, deviceID, action string) (*AuthResult, error) {
	shopper, err := s.shoppers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	newAccount := false
	if shopper == nil {
		shopper = &shopperdomain.Shopper{
			ID:        uuid.New().String(),
			Email:     email,
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}
		if err := shopper.Validate(); err != nil {
			return nil, err
		}
		if err := s.shoppers.Create(ctx, shopper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}
		newAccount = true
	}

	result, err := s.issueSession(ctx, shopper, deviceID)
	if err != nil {
		if newAccount {
			if delErr := s.shoppers.Delete(ctx, shopper.ID); delErr != nil {
				log.Printf("auth: rollback of new shopper %s failed: %v", shopper.ID, delErr)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	s.auditor.LogEvent(ctx, shopper.ID, action, "device="+deviceID)
	return result, nil
}

// issueSession mints a token pair and replaces whatever session the shopper
// had on the device, keeping at most one live session per (shopper, device).
func (s *AuthService) issueSession(ctx context.Context, shopper *shopperdomain.Shopper, deviceID string) (*AuthResult, error) {
	access, err := s.tokens.IssueAccessToken(shopper.ID, deviceID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(shopper.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteByShopperAndDevice(ctx, shopper.ID, deviceID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &sessiondomain.Session{
		Token:     refresh,
		ShopperID: shopper.ID,
		DeviceID:  deviceID,
		ExpiresAt: now.Add(s.tokens.RefreshTTL()),
		CreatedAt: now,
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ShopperID:    shopper.ID,
		Email:        shopper.Email,
		Name:         shopper.Name,
	}, nil
}
