package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sound-rewind/internal/domain"
	"sound-rewind/internal/logger"
	"sound-rewind/internal/repository"
)

// accountService implements the AccountService interface
type accountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates a new AccountService instance
func NewAccountService(accountRepo repository.AccountRepository) domain.AccountService {
	return &accountService{accountRepo: accountRepo}
}

// GetAccount retrieves an account by ID
func (s *accountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: account ID cannot be empty", domain.ErrInvalidInput)
	}
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts returns up to limit registered accounts
func (s *accountService) ListAccounts(ctx context.Context, limit int) ([]*domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetOrCreateAccount looks an account up by its platform handle, registering
// it on first sight.
func (s *accountService) GetOrCreateAccount(ctx context.Context, handle, name string) (*domain.Account, error) {
	if handle == "" {
		return nil, fmt.Errorf("%w: handle cannot be empty", domain.ErrInvalidInput)
	}

	account, err := s.accountRepo.GetByHandle(ctx, handle)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if name == "" {
		name = handle
	}
	account = &domain.Account{
		ID:        uuid.New().String(),
		Handle:    handle,
		Name:      name,
		CreatedAt: timeNow(),
		UpdatedAt: timeNow(),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("account registered", map[string]interface{}{
		"account_id": account.ID,
		"handle":     handle,
	})
	return account, nil
}
