package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"sound-rewind/internal/domain"
)

// AccountRepository implements repository.AccountRepository for SQLite
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, handle, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		account.ID,
		account.Handle,
		account.Name,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, "SELECT id, handle, name, created_at, updated_at FROM accounts WHERE id = ?", id)
}

// GetByHandle retrieves an account by its platform handle
func (r *AccountRepository) GetByHandle(ctx context.Context, handle string) (*domain.Account, error) {
	return r.getOne(ctx, "SELECT id, handle, name, created_at, updated_at FROM accounts WHERE handle = ?", handle)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Handle,
		&account.Name,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &account, nil
}

// List retrieves up to limit accounts ordered by creation time
func (r *AccountRepository) List(ctx context.Context, limit int) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, handle, name, created_at, updated_at
		FROM accounts
		ORDER BY created_at
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Handle,
			&account.Name,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// Update updates an existing account
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET handle = ?, name = ?, updated_at = ? WHERE id = ?
	`,
		account.Handle,
		account.Name,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// Delete removes an account and, via cascading foreign keys, its snapshot data
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
