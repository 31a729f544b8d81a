package domain

import (
	"context"
)

// WrappedService computes and serves per-account wrapped summaries.
// Summaries are cached and persisted by the implementation; the underlying
// engine is pure and recomputes from the stored snapshot on demand.
type WrappedService interface {
	// GetWrappedSummary returns the summary for an account, serving a cached
	// copy when one is fresh enough.
	GetWrappedSummary(ctx context.Context, accountID string) (*WrappedSummary, error)

	// RefreshWrappedSummary recomputes the summary from the current snapshot,
	// bypassing the cache, and persists the result.
	RefreshWrappedSummary(ctx context.Context, accountID string) (*WrappedSummary, error)
}

// SyncService pulls an account's track corpus, activity log and follow graph
// from the upstream platform into local storage.
type SyncService interface {
	// SyncAccount refreshes all snapshot data for one account.
	// Partial failures leave previously synced data intact.
	SyncAccount(ctx context.Context, accountID string) error
}

// AccountService manages registered listener accounts.
type AccountService interface {
	GetAccount(ctx context.Context, id string) (*Account, error)
	ListAccounts(ctx context.Context, limit int) ([]*Account, error)
	GetOrCreateAccount(ctx context.Context, handle, name string) (*Account, error)
}

// PlatformAdapter abstracts the upstream music platform API. All methods
// return point-in-time snapshots; counters may change between calls and the
// engine makes no freshness guarantee beyond "as fetched".
type PlatformAdapter interface {
	// GetAccountTracks fetches the uploaded/liked track corpus for an account.
	GetAccountTracks(ctx context.Context, handle string) ([]*Track, error)

	// GetAccountActivity fetches the activity log for an account.
	GetAccountActivity(ctx context.Context, handle string) ([]*ActivityEvent, error)

	// GetFollowedAccounts fetches followed accounts with their liked sets.
	GetFollowedAccounts(ctx context.Context, handle string) ([]*FollowedAccount, error)
}
