package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sound-rewind/internal/analytics"
	"sound-rewind/internal/cache"
	"sound-rewind/internal/domain"
	"sound-rewind/internal/logger"
	"sound-rewind/internal/metrics"
	"sound-rewind/internal/repository"
)

// timeNow is a variable for testing purposes
var timeNow = time.Now

// wrappedService implements the WrappedService interface. It owns the
// orchestration around the pure analytics engine: loading the snapshot,
// memoizing results and persisting them. The engine itself stays stateless.
type wrappedService struct {
	accountRepo  repository.AccountRepository
	trackRepo    repository.TrackRepository
	activityRepo repository.ActivityEventRepository
	followRepo   repository.FollowedAccountRepository
	summaryRepo  repository.SummaryRepository
	aggregator   *analytics.Aggregator
	summaryCache *cache.SummaryCache
	metrics      *metrics.Metrics
}

// NewWrappedService creates a new WrappedService instance
func NewWrappedService(
	accountRepo repository.AccountRepository,
	trackRepo repository.TrackRepository,
	activityRepo repository.ActivityEventRepository,
	followRepo repository.FollowedAccountRepository,
	summaryRepo repository.SummaryRepository,
	aggregator *analytics.Aggregator,
	summaryCache *cache.SummaryCache,
	m *metrics.Metrics,
) domain.WrappedService {
	return &wrappedService{
		accountRepo:  accountRepo,
		trackRepo:    trackRepo,
		activityRepo: activityRepo,
		followRepo:   followRepo,
		summaryRepo:  summaryRepo,
		aggregator:   aggregator,
		summaryCache: summaryCache,
		metrics:      m,
	}
}

// GetWrappedSummary serves the summary for an account, in order of
// preference: in-memory cache, persisted summary, fresh computation.
func (s *wrappedService) GetWrappedSummary(ctx context.Context, accountID string) (*domain.WrappedSummary, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID cannot be empty", domain.ErrInvalidInput)
	}

	if summary, ok := s.summaryCache.Get(accountID); ok {
		s.metrics.CacheHits.Inc()
		return summary, nil
	}
	s.metrics.CacheMisses.Inc()

	summary, err := s.summaryRepo.GetByAccountID(ctx, accountID)
	if err == nil {
		s.summaryCache.Set(accountID, summary)
		return summary, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load persisted summary: %w", err)
	}

	return s.RefreshWrappedSummary(ctx, accountID)
}

// RefreshWrappedSummary recomputes the summary from the stored snapshot,
// persists it and refreshes the cache.
func (s *wrappedService) RefreshWrappedSummary(ctx context.Context, accountID string) (*domain.WrappedSummary, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID cannot be empty", domain.ErrInvalidInput)
	}

	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	snap, err := s.loadSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}

	started := timeNow()
	summary := s.aggregator.Summarize(*snap)
	s.metrics.SummariesComputed.Inc()
	s.metrics.SummaryDuration.Observe(time.Since(started).Seconds())

	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		// Persisting is best effort; the computed summary is still valid.
		logger.Warn("failed to persist wrapped summary", map[string]interface{}{
			"account_id": accountID,
			"error":      err.Error(),
		})
	}
	s.summaryCache.Set(accountID, summary)

	logger.Info("wrapped summary computed", map[string]interface{}{
		"account_id": accountID,
		"tracks":     summary.TrackCount,
		"events":     summary.EventCount,
	})

	return summary, nil
}

// loadSnapshot assembles the immutable engine input from the repositories.
func (s *wrappedService) loadSnapshot(ctx context.Context, accountID string) (*analytics.Snapshot, error) {
	tracks, err := s.trackRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}

	events, err := s.activityRepo.GetByAccountID(ctx, accountID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load activity events: %w", err)
	}

	followed, err := s.followRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load followed accounts: %w", err)
	}

	return &analytics.Snapshot{
		AccountID: accountID,
		Tracks:    tracks,
		Events:    events,
		Followed:  followed,
		Now:       timeNow(),
	}, nil
}
