package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sound-rewind/internal/cache"
	"sound-rewind/internal/domain"
)

// SummaryRepository implements repository.SummaryRepository for SQLite.
// Summaries are stored as JSON payloads tagged with the engine version;
// a row computed by an older engine is treated as absent.
type SummaryRepository struct {
	db *DB
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Save inserts or replaces the computed summary for an account
func (r *SummaryRepository) Save(ctx context.Context, summary *domain.WrappedSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO wrapped_summaries (account_id, payload, engine_version, generated_at)
		VALUES (?, ?, ?, ?)
	`,
		summary.AccountID,
		string(payload),
		cache.EngineVersion,
		summary.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

// GetByAccountID retrieves the persisted summary for an account.
// Returns domain.ErrNotFound when no current-version summary exists.
func (r *SummaryRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.WrappedSummary, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM wrapped_summaries
		WHERE account_id = ? AND engine_version = ?
	`, accountID, cache.EngineVersion).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}

	var summary domain.WrappedSummary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &summary, nil
}

// Delete removes the persisted summary for an account
func (r *SummaryRepository) Delete(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM wrapped_summaries WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}
