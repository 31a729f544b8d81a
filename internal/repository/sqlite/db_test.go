package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"sound-rewind/internal/domain"
)

// setupTestDB creates a migrated temp-file database, cleaned up with the test.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-rewind-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	db, err := NewDB(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to open database: %v", err)
	}

	if err := Migrate(db.DB); err != nil {
		db.Close()
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(tmpFile.Name())
	})

	return db
}

// createTestAccount inserts and returns a fresh account.
func createTestAccount(t *testing.T, db *DB) *domain.Account {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	account := &domain.Account{
		ID:        uuid.New().String(),
		Handle:    "handle-" + uuid.New().String()[:8],
		Name:      "Test Listener",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	// Re-running migrations against a migrated database must be a no-op.
	if err := Migrate(db.DB); err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}
}
