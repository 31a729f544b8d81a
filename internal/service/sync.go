package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sound-rewind/internal/domain"
	"sound-rewind/internal/logger"
	"sound-rewind/internal/metrics"
	"sound-rewind/internal/repository"
)

// syncService implements the SyncService interface. It pulls the track
// corpus, activity log and follow graph for one account from the upstream
// platform into local storage, replacing the previous snapshot.
type syncService struct {
	accountRepo  repository.AccountRepository
	trackRepo    repository.TrackRepository
	activityRepo repository.ActivityEventRepository
	followRepo   repository.FollowedAccountRepository
	adapter      domain.PlatformAdapter
	metrics      *metrics.Metrics
}

// NewSyncService creates a new SyncService instance
func NewSyncService(
	accountRepo repository.AccountRepository,
	trackRepo repository.TrackRepository,
	activityRepo repository.ActivityEventRepository,
	followRepo repository.FollowedAccountRepository,
	adapter domain.PlatformAdapter,
	m *metrics.Metrics,
) domain.SyncService {
	return &syncService{
		accountRepo:  accountRepo,
		trackRepo:    trackRepo,
		activityRepo: activityRepo,
		followRepo:   followRepo,
		adapter:      adapter,
		metrics:      m,
	}
}

// SyncAccount refreshes all snapshot data for one account. Each of the
// three fetches is applied independently: a failed fetch leaves the
// previously synced data for that slice intact.
func (s *syncService) SyncAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	var firstErr error

	if err := s.syncTracks(ctx, account); err != nil {
		s.metrics.UpstreamErrors.Inc()
		firstErr = err
		logger.Warn("track sync failed", map[string]interface{}{
			"account_id": accountID, "error": err.Error(),
		})
	}

	if err := s.syncActivity(ctx, account); err != nil {
		s.metrics.UpstreamErrors.Inc()
		if firstErr == nil {
			firstErr = err
		}
		logger.Warn("activity sync failed", map[string]interface{}{
			"account_id": accountID, "error": err.Error(),
		})
	}

	if err := s.syncFollowed(ctx, account); err != nil {
		s.metrics.UpstreamErrors.Inc()
		if firstErr == nil {
			firstErr = err
		}
		logger.Warn("follow sync failed", map[string]interface{}{
			"account_id": accountID, "error": err.Error(),
		})
	}

	if firstErr != nil {
		s.metrics.SyncRuns.WithLabelValues("partial").Inc()
		return fmt.Errorf("sync for account %s incomplete: %w", accountID, firstErr)
	}

	s.metrics.SyncRuns.WithLabelValues("ok").Inc()
	return nil
}

func (s *syncService) syncTracks(ctx context.Context, account *domain.Account) error {
	tracks, err := s.adapter.GetAccountTracks(ctx, account.Handle)
	if err != nil {
		return fmt.Errorf("failed to fetch tracks: %w", err)
	}
	for _, track := range tracks {
		if err := s.trackRepo.Upsert(ctx, account.ID, track); err != nil {
			return fmt.Errorf("failed to store track %s: %w", track.ID, err)
		}
	}
	return nil
}

// syncActivity replaces the stored log with the upstream log. The log is
// append-only upstream, so a full replace converges to the same contents.
func (s *syncService) syncActivity(ctx context.Context, account *domain.Account) error {
	events, err := s.adapter.GetAccountActivity(ctx, account.Handle)
	if err != nil {
		return fmt.Errorf("failed to fetch activity: %w", err)
	}

	if err := s.activityRepo.DeleteByAccountID(ctx, account.ID); err != nil {
		return fmt.Errorf("failed to clear activity log: %w", err)
	}
	for _, event := range events {
		event.AccountID = account.ID
		if event.ID == "" {
			event.ID = uuid.New().String()
		}
		if err := s.activityRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("failed to store activity event: %w", err)
		}
	}
	return nil
}

func (s *syncService) syncFollowed(ctx context.Context, account *domain.Account) error {
	followed, err := s.adapter.GetFollowedAccounts(ctx, account.Handle)
	if err != nil {
		return fmt.Errorf("failed to fetch followings: %w", err)
	}
	if err := s.followRepo.Replace(ctx, account.ID, followed); err != nil {
		return fmt.Errorf("failed to store followings: %w", err)
	}
	return nil
}
