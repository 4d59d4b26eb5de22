package repository

import (
	"context"
	"time"

	"supershopcart/backend/internal/session/domain"
)

// Repository defines persistence for refresh sessions.
type Repository interface {
	// GetByToken returns the session for the given refresh token value, or nil if not found.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	// DeleteByToken removes a single session and reports whether a row was
	// removed. Concurrent refreshes race on this: only one caller sees true.
	DeleteByToken(ctx context.Context, token string) (bool, error)
	// DeleteByShopperAndDevice removes every session the shopper holds on one device.
	DeleteByShopperAndDevice(ctx context.Context, shopperID, deviceID string) error
	// DeleteAllByShopper removes every session the shopper holds on any device.
	DeleteAllByShopper(ctx context.Context, shopperID string) error
	// DeleteExpired purges sessions whose expiry is at or before now and reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
