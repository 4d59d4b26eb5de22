package repository

import (
	"context"
	"database/sql"
	"errors"

	"supershopcart/backend/internal/shopper/domain"
)

const (
	getShopperByID = `
SELECT id, email, name, created_at
FROM shoppers
WHERE id = $1`

	getShopperByEmail = `
SELECT id, email, name, created_at
FROM shoppers
WHERE email = $1`

	insertShopper = `
INSERT INTO shoppers (id, email, name, created_at)
VALUES ($1, $2, $3, $4)`

	deleteShopper = `
DELETE FROM shoppers
WHERE id = $1`
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a shopper repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the shopper for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Shopper, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, getShopperByID, id))
}

// GetByEmail returns the shopper for email, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Shopper, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, getShopperByEmail, email))
}

// Create persists the shopper. The shopper must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Shopper) error {
	_, err := r.db.ExecContext(ctx, insertShopper, s.ID, s.Email, s.Name, s.CreatedAt)
	return err
}

// Delete removes the shopper with the given id. Deleting a missing shopper is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteShopper, id)
	return err
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*domain.Shopper, error) {
	var s domain.Shopper
	if err := row.Scan(&s.ID, &s.Email, &s.Name, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
