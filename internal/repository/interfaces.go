package repository

import (
	"context"
	"time"

	"sound-rewind/internal/domain"
)

// AccountRepository handles listener account persistence
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Account, error)
	List(ctx context.Context, limit int) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
}

// TrackRepository handles track snapshot persistence
type TrackRepository interface {
	Upsert(ctx context.Context, accountID string, track *domain.Track) error
	GetByAccountID(ctx context.Context, accountID string) ([]*domain.Track, error)
	DeleteByAccountID(ctx context.Context, accountID string) error
}

// ActivityEventRepository handles activity log persistence
type ActivityEventRepository interface {
	Create(ctx context.Context, event *domain.ActivityEvent) error
	GetByAccountID(ctx context.Context, accountID string, since time.Time) ([]*domain.ActivityEvent, error)
	DeleteByAccountID(ctx context.Context, accountID string) error
}

// FollowedAccountRepository handles follow-graph snapshot persistence
type FollowedAccountRepository interface {
	Replace(ctx context.Context, accountID string, followed []*domain.FollowedAccount) error
	GetByAccountID(ctx context.Context, accountID string) ([]*domain.FollowedAccount, error)
}

// SummaryRepository persists computed wrapped summaries
type SummaryRepository interface {
	Save(ctx context.Context, summary *domain.WrappedSummary) error
	GetByAccountID(ctx context.Context, accountID string) (*domain.WrappedSummary, error)
	Delete(ctx context.Context, accountID string) error
}
