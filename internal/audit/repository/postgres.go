package repository

import (
	"context"
	"database/sql"

	"supershopcart/backend/internal/audit/domain"
)

const (
	insertAuditLog = `
INSERT INTO audit_logs (id, shopper_id, action, ip, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	listAuditLogsByShopper = `
SELECT id, shopper_id, action, ip, metadata, created_at
FROM audit_logs
WHERE shopper_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit log repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the audit log. The audit log must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	sid := sql.NullString{String: a.ShopperID, Valid: a.ShopperID != ""}
	meta := sql.NullString{String: a.Metadata, Valid: a.Metadata != ""}
	_, err := r.db.ExecContext(ctx, insertAuditLog,
		a.ID, sid, a.Action, a.IP, meta, a.CreatedAt)
	return err
}

// ListByShopper returns audit logs for the shopper, newest first.
// Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListByShopper(ctx context.Context, shopperID string, limit, offset int32) ([]*domain.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx, listAuditLogsByShopper, shopperID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AuditLog
	for rows.Next() {
		var (
			a    domain.AuditLog
			sid  sql.NullString
			meta sql.NullString
		)
		if err := rows.Scan(&a.ID, &sid, &a.Action, &a.IP, &meta, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ShopperID = sid.String
		a.Metadata = meta.String
		out = append(out, &a)
	}
	return out, rows.Err()
}
