package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"supershopcart/backend/internal/session/domain"
)

const (
	getSessionByToken = `
SELECT token, shopper_id, device_id, expires_at, created_at
FROM refresh_tokens
WHERE token = $1`

	insertSession = `
INSERT INTO refresh_tokens (token, shopper_id, device_id, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5)`

	deleteSessionByToken = `
DELETE FROM refresh_tokens
WHERE token = $1`

	deleteSessionsByShopperAndDevice = `
DELETE FROM refresh_tokens
WHERE shopper_id = $1 AND device_id = $2`

	deleteSessionsByShopper = `
DELETE FROM refresh_tokens
WHERE shopper_id = $1`

	deleteExpiredSessions = `
DELETE FROM refresh_tokens
WHERE expires_at <= $1`
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByToken returns the session for token, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx, getSessionByToken, token).
		Scan(&s.Token, &s.ShopperID, &s.DeviceID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persists the session.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx, insertSession,
		s.Token, s.ShopperID, s.DeviceID, s.ExpiresAt, s.CreatedAt)
	return err
}

// DeleteByToken removes the session with the given token value and reports
// whether a row was removed.
func (r *PostgresRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteSessionByToken, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByShopperAndDevice removes every session the shopper holds on the device.
func (r *PostgresRepository) DeleteByShopperAndDevice(ctx context.Context, shopperID, deviceID string) error {
	_, err := r.db.ExecContext(ctx, deleteSessionsByShopperAndDevice, shopperID, deviceID)
	return err
}

// DeleteAllByShopper removes every session the shopper holds.
func (r *PostgresRepository) DeleteAllByShopper(ctx context.Context, shopperID string) error {
	_, err := r.db.ExecContext(ctx, deleteSessionsByShopper, shopperID)
	return err
}

// DeleteExpired purges sessions whose expiry is at or before now.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessions, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
