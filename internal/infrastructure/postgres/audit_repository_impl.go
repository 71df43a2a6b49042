package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/todolist-auth/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, e repository.AuditEntry) error {
	md := e.Metadata
	if md == nil {
		md = map[string]any{}
	}
	b, err := json.Marshal(md)
	if err != nil {
		return err
	}

	var uid pgtype.UUID
	if e.AccountID != "" {
		if parsed, err := uuid.Parse(e.AccountID); err == nil {
			uid.Bytes = parsed
			uid.Valid = true
		}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_logs (account_id, email, action, ip, user_agent, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uid, text(e.Email), e.Action, text(e.IP), text(e.UserAgent), b)
	return err
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
