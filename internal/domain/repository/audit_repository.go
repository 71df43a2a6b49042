package repository

import "context"

// AuditEntry is one security-relevant event.
type AuditEntry struct {
	AccountID string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}

type AuditRepository interface {
	Insert(ctx context.Context, e AuditEntry) error
}
