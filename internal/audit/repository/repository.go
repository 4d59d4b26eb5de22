package repository

import (
	"context"

	"supershopcart/backend/internal/audit/domain"
)

// Repository defines persistence for audit logs.
type Repository interface {
	Create(ctx context.Context, a *domain.AuditLog) error
	// ListByShopper returns audit logs for the shopper, newest first, paginated by limit and offset.
	ListByShopper(ctx context.Context, shopperID string, limit, offset int32) ([]*domain.AuditLog, error)
}
