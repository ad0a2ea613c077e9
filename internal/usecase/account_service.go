package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
)

var (
	// ErrInvalidCredentials is returned when the email is unknown or the
	// password does not match. The two cases are deliberately not
	// distinguished to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAdminRequired is returned when a login requests admin access but
	// the account does not have the admin flag.
	ErrAdminRequired = errors.New("account is not an administrator")
)

// RegisterAccountInput contains the input parameters for registering an account.
type RegisterAccountInput struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// AccountService defines the interface for account business logic operations.
type AccountService interface {
	// Register validates the credentials, hashes the password and persists
	// the account. Returns repository.ErrDuplicateEmail if the email is
	// already registered.
	Register(ctx context.Context, input RegisterAccountInput) (*model.Account, error)

	// Authenticate verifies an email/password pair. When requireAdmin is
	// true the account must also carry the admin flag.
	Authenticate(ctx context.Context, email, password string, requireAdmin bool) (*model.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]*model.Account, error)
}

type accountService struct {
	repo repository.AccountRepository
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(repo repository.AccountRepository) AccountService {
	return &accountService{repo: repo}
}

func (s *accountService) Register(ctx context.Context, input RegisterAccountInput) (*model.Account, error) {
	if err := model.ValidateCredentials(input.Email, input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsAdmin:      input.IsAdmin,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: insert account: %v", ErrPersistence, err)
	}

	return account, nil
}

func (s *accountService) Authenticate(ctx context.Context, email, password string, requireAdmin bool) (*model.Account, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: get account: %v", ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if requireAdmin && !account.IsAdmin {
		return nil, ErrAdminRequired
	}

	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	return s.repo.List(ctx)
}
