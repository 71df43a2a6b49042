package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// AccountRepository defines the persistence operations for accounts.
// Email and activation token uniqueness is enforced by the backing store.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	Save(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByActivationToken(ctx context.Context, token string) (*entity.Account, error)
}
