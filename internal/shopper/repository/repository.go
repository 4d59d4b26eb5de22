package repository

import (
	"context"

	"supershopcart/backend/internal/shopper/domain"
)

// Repository defines persistence for shopper accounts.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Shopper, error)
	GetByEmail(ctx context.Context, email string) (*domain.Shopper, error)
	Create(ctx context.Context, s *domain.Shopper) error
	Delete(ctx context.Context, id string) error
}
