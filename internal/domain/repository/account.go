package repository

import (
	"context"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	// Create persists a new account and assigns its surrogate id.
	// Returns ErrDuplicateEmail if the email is already registered.
	Create(ctx context.Context, account *model.Account) error

	// GetByEmail retrieves an account by email.
	// Returns nil and ErrAccountNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)

	// List retrieves all accounts.
	List(ctx context.Context) ([]*model.Account, error)
}
