package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	"github.com/oksasatya/todolist-auth/internal/domain/repository"
)

const (
	uniqueViolation    = "23505"
	accountsEmailIndex = "accounts_email_key"
)

const accountColumns = `id, email, password_hash, roles, birth_date, created_at,
	is_account_valid, account_validated_at, activation_token, activation_requested_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, roles, birth_date, created_at,
			is_account_valid, account_validated_at, activation_token, activation_requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, a.Email, a.PasswordHash, rolesOrEmpty(a.Roles), a.BirthDate, a.CreatedAt,
		a.IsAccountValid, a.AccountValidatedAt, a.ActivationToken, a.ActivationRequestedAt)

	if err := row.Scan(&a.ID); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Save writes back the mutable state. Email, birth date and creation stamp never change.
func (r *AccountRepository) Save(ctx context.Context, a *entity.Account) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET password_hash = $1, roles = $2, is_account_valid = $3, account_validated_at = $4,
			activation_token = $5, activation_requested_at = $6
		WHERE id = $7
	`, a.PasswordHash, rolesOrEmpty(a.Roles), a.IsAccountValid, a.AccountValidatedAt,
		a.ActivationToken, a.ActivationRequestedAt, a.ID)
	if err != nil {
		return mapWriteError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (r *AccountRepository) FindByActivationToken(ctx context.Context, token string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE activation_token = $1`, token)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Roles, &a.BirthDate, &a.CreatedAt,
		&a.IsAccountValid, &a.AccountValidatedAt, &a.ActivationToken, &a.ActivationRequestedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func rolesOrEmpty(roles []string) []string {
	if roles == nil {
		return []string{}
	}
	return roles
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == accountsEmailIndex {
		return repository.ErrEmailTaken
	}
	return err
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
