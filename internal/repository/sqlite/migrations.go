package sqlite

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      string
}

// migrations contains all database migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up: `
			CREATE TABLE IF NOT EXISTS accounts (
				id TEXT PRIMARY KEY,
				handle TEXT UNIQUE NOT NULL,
				name TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_accounts_handle ON accounts(handle);

			CREATE TABLE IF NOT EXISTS tracks (
				account_id TEXT NOT NULL,
				id TEXT NOT NULL,
				title TEXT NOT NULL,
				artist_id TEXT NOT NULL,
				artist_name TEXT NOT NULL,
				artist_followers INTEGER,
				duration_ms INTEGER NOT NULL,
				genre TEXT,
				genre_family TEXT,
				tags TEXT,
				playback_count INTEGER NOT NULL DEFAULT 0,
				like_count INTEGER NOT NULL DEFAULT 0,
				repost_count INTEGER NOT NULL DEFAULT 0,
				released_at DATETIME,
				PRIMARY KEY (account_id, id),
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			);

			CREATE INDEX IF NOT EXISTS idx_tracks_account_id ON tracks(account_id);

			CREATE TABLE IF NOT EXISTS activity_events (
				id TEXT PRIMARY KEY,
				account_id TEXT NOT NULL,
				track_id TEXT NOT NULL,
				kind TEXT NOT NULL,
				play_duration_ms INTEGER NOT NULL DEFAULT 0,
				occurred_at DATETIME NOT NULL,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			);

			CREATE INDEX IF NOT EXISTS idx_activity_events_account_id ON activity_events(account_id);
			CREATE INDEX IF NOT EXISTS idx_activity_events_occurred_at ON activity_events(occurred_at);

			CREATE TABLE IF NOT EXISTS followed_accounts (
				account_id TEXT NOT NULL,
				followed_id TEXT NOT NULL,
				name TEXT NOT NULL,
				avatar_url TEXT,
				liked_tracks TEXT NOT NULL,
				liked_artists TEXT NOT NULL,
				liked_genres TEXT NOT NULL,
				PRIMARY KEY (account_id, followed_id),
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			);

			CREATE INDEX IF NOT EXISTS idx_followed_accounts_account_id ON followed_accounts(account_id);

			CREATE TABLE IF NOT EXISTS wrapped_summaries (
				account_id TEXT PRIMARY KEY,
				payload TEXT NOT NULL,
				engine_version INTEGER NOT NULL,
				generated_at DATETIME NOT NULL,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			);
		`,
	},
}

// Migrate runs all pending migrations
func Migrate(db *sql.DB) error {
	// Get current version
	currentVersion, err := getCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		// Execute migration
		if _, err := tx.Exec(migration.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		// Record migration
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			migration.Version,
			migration.Name,
			timeNow(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// getCurrentVersion returns the current schema version
func getCurrentVersion(db *sql.DB) (int, error) {
	// First, ensure the schema_migrations table exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to query version: %w", err)
	}
	return version, nil
}
