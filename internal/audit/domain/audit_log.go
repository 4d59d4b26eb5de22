package domain

import "time"

// AuditLog represents one auth lifecycle event.
type AuditLog struct {
	ID        string
	ShopperID string
	Action    string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
