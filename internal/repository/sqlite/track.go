package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sound-rewind/internal/domain"
)

// TrackRepository implements repository.TrackRepository for SQLite
type TrackRepository struct {
	db *DB
}

// NewTrackRepository creates a new TrackRepository
func NewTrackRepository(db *DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Upsert inserts or replaces a track snapshot for an account. Counters are
// live upstream values, so a re-sync always overwrites the previous row.
func (r *TrackRepository) Upsert(ctx context.Context, accountID string, track *domain.Track) error {
	var followers sql.NullInt64
	if track.Artist.FollowerCountKnown {
		followers = sql.NullInt64{Int64: int64(track.Artist.FollowerCount), Valid: true}
	}

	var releasedAt sql.NullTime
	if !track.ReleasedAt.IsZero() {
		releasedAt = sql.NullTime{Time: track.ReleasedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tracks (
			account_id, id, title, artist_id, artist_name, artist_followers,
			duration_ms, genre, genre_family, tags,
			playback_count, like_count, repost_count, released_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		accountID,
		track.ID,
		track.Title,
		track.Artist.ID,
		track.Artist.Name,
		followers,
		track.Duration.Milliseconds(),
		track.Genre,
		track.GenreFamily,
		track.Tags,
		track.PlaybackCount,
		track.LikeCount,
		track.RepostCount,
		releasedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert track: %w", err)
	}
	return nil
}

// GetByAccountID retrieves all track snapshots for an account
func (r *TrackRepository) GetByAccountID(ctx context.Context, accountID string) ([]*domain.Track, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, artist_id, artist_name, artist_followers,
		       duration_ms, genre, genre_family, tags,
		       playback_count, like_count, repost_count, released_at
		FROM tracks
		WHERE account_id = ?
		ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*domain.Track
	for rows.Next() {
		var track domain.Track
		var followers sql.NullInt64
		var durationMS int64
		var genre, genreFamily, tags sql.NullString
		var releasedAt sql.NullTime

		if err := rows.Scan(
			&track.ID,
			&track.Title,
			&track.Artist.ID,
			&track.Artist.Name,
			&followers,
			&durationMS,
			&genre,
			&genreFamily,
			&tags,
			&track.PlaybackCount,
			&track.LikeCount,
			&track.RepostCount,
			&releasedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}

		if followers.Valid {
			track.Artist.FollowerCount = int(followers.Int64)
			track.Artist.FollowerCountKnown = true
		}
		track.Duration = time.Duration(durationMS) * time.Millisecond
		track.Genre = genre.String
		track.GenreFamily = genreFamily.String
		track.Tags = tags.String
		if releasedAt.Valid {
			track.ReleasedAt = releasedAt.Time
		}

		tracks = append(tracks, &track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracks: %w", err)
	}

	return tracks, nil
}

// DeleteByAccountID removes all track snapshots for an account
func (r *TrackRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tracks WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("failed to delete tracks: %w", err)
	}
	return nil
}
