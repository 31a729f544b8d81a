package sqlite

import (
	"context"
	"fmt"
	"time"

	"sound-rewind/internal/domain"
)

// ActivityEventRepository implements repository.ActivityEventRepository for SQLite
type ActivityEventRepository struct {
	db *DB
}

// NewActivityEventRepository creates a new ActivityEventRepository
func NewActivityEventRepository(db *DB) *ActivityEventRepository {
	return &ActivityEventRepository{db: db}
}

// Create appends an activity event to the log
func (r *ActivityEventRepository) Create(ctx context.Context, event *domain.ActivityEvent) error {
	if !event.Kind.Valid() {
		return fmt.Errorf("%w: unknown event kind %q", domain.ErrInvalidInput, event.Kind)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_events (id, account_id, track_id, kind, play_duration_ms, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		event.ID,
		event.AccountID,
		event.TrackID,
		string(event.Kind),
		event.PlayDuration.Milliseconds(),
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity event: %w", err)
	}
	return nil
}

// GetByAccountID retrieves activity events for an account since a given
// time, ordered by event timestamp. Timestamp order is the only meaningful
// order of the log.
func (r *ActivityEventRepository) GetByAccountID(ctx context.Context, accountID string, since time.Time) ([]*domain.ActivityEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, track_id, kind, play_duration_ms, occurred_at
		FROM activity_events
		WHERE account_id = ? AND occurred_at >= ?
		ORDER BY occurred_at
	`, accountID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity events: %w", err)
	}
	defer rows.Close()

	var events []*domain.ActivityEvent
	for rows.Next() {
		var event domain.ActivityEvent
		var kind string
		var playDurationMS int64
		if err := rows.Scan(
			&event.ID,
			&event.AccountID,
			&event.TrackID,
			&kind,
			&playDurationMS,
			&event.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		event.Kind = domain.EventKind(kind)
		event.PlayDuration = time.Duration(playDurationMS) * time.Millisecond
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity events: %w", err)
	}

	return events, nil
}

// DeleteByAccountID removes all activity events for an account
func (r *ActivityEventRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM activity_events WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("failed to delete activity events: %w", err)
	}
	return nil
}
