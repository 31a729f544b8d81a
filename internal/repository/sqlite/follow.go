package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sound-rewind/internal/domain"
)

// FollowedAccountRepository implements repository.FollowedAccountRepository
// for SQLite. Liked sets are stored as JSON columns, mirroring how the
// follow-graph snapshot arrives from upstream.
type FollowedAccountRepository struct {
	db *DB
}

// NewFollowedAccountRepository creates a new FollowedAccountRepository
func NewFollowedAccountRepository(db *DB) *FollowedAccountRepository {
	return &FollowedAccountRepository{db: db}
}

// Replace swaps the full follow-graph snapshot for an account in one
// transaction. The snapshot is point-in-time data, so partial updates make
// no sense.
func (r *FollowedAccountRepository) Replace(ctx context.Context, accountID string, followed []*domain.FollowedAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM followed_accounts WHERE account_id = ?", accountID); err != nil {
		return fmt.Errorf("failed to clear followed accounts: %w", err)
	}

	for _, f := range followed {
		tracksJSON, err := json.Marshal(f.LikedTracks)
		if err != nil {
			return fmt.Errorf("failed to marshal liked tracks: %w", err)
		}
		artistsJSON, err := json.Marshal(f.LikedArtists)
		if err != nil {
			return fmt.Errorf("failed to marshal liked artists: %w", err)
		}
		genresJSON, err := json.Marshal(f.LikedGenres)
		if err != nil {
			return fmt.Errorf("failed to marshal liked genres: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO followed_accounts (account_id, followed_id, name, avatar_url, liked_tracks, liked_artists, liked_genres)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			accountID,
			f.ID,
			f.Name,
			f.AvatarURL,
			string(tracksJSON),
			string(artistsJSON),
			string(genresJSON),
		); err != nil {
			return fmt.Errorf("failed to insert followed account: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByAccountID retrieves the follow-graph snapshot for an account
func (r *FollowedAccountRepository) GetByAccountID(ctx context.Context, accountID string) ([]*domain.FollowedAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT followed_id, name, avatar_url, liked_tracks, liked_artists, liked_genres
		FROM followed_accounts
		WHERE account_id = ?
		ORDER BY followed_id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query followed accounts: %w", err)
	}
	defer rows.Close()

	var followed []*domain.FollowedAccount
	for rows.Next() {
		var f domain.FollowedAccount
		var avatarURL sql.NullString
		var tracksJSON, artistsJSON, genresJSON string

		if err := rows.Scan(&f.ID, &f.Name, &avatarURL, &tracksJSON, &artistsJSON, &genresJSON); err != nil {
			return nil, fmt.Errorf("failed to scan followed account: %w", err)
		}

		f.AvatarURL = avatarURL.String
		if err := json.Unmarshal([]byte(tracksJSON), &f.LikedTracks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal liked tracks: %w", err)
		}
		if err := json.Unmarshal([]byte(artistsJSON), &f.LikedArtists); err != nil {
			return nil, fmt.Errorf("failed to unmarshal liked artists: %w", err)
		}
		if err := json.Unmarshal([]byte(genresJSON), &f.LikedGenres); err != nil {
			return nil, fmt.Errorf("failed to unmarshal liked genres: %w", err)
		}

		followed = append(followed, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating followed accounts: %w", err)
	}

	return followed, nil
}
