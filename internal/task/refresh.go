package task

import (
	"context"
	"log"
	"sync"
	"time"

	"sound-rewind/internal/cache"
	"sound-rewind/internal/domain"
	"sound-rewind/internal/repository"
)

// SummaryRefresher handles background re-syncing and recomputation of
// wrapped summaries so that served results never grow older than one
// refresh interval plus the cache TTL.
type SummaryRefresher struct {
	accountRepo     repository.AccountRepository
	syncService     domain.SyncService
	wrappedService  domain.WrappedService
	summaryCache    *cache.SummaryCache
	refreshInterval time.Duration
	stopCh          chan struct{}
	wg              sync.WaitGroup
	mu              sync.RWMutex
	lastRefresh     map[string]time.Time // last successful refresh per account
}

// NewSummaryRefresher creates a new SummaryRefresher instance
func NewSummaryRefresher(
	accountRepo repository.AccountRepository,
	syncService domain.SyncService,
	wrappedService domain.WrappedService,
	summaryCache *cache.SummaryCache,
	refreshInterval time.Duration,
) *SummaryRefresher {
	return &SummaryRefresher{
		accountRepo:     accountRepo,
		syncService:     syncService,
		wrappedService:  wrappedService,
		summaryCache:    summaryCache,
		refreshInterval: refreshInterval,
		stopCh:          make(chan struct{}),
		lastRefresh:     make(map[string]time.Time),
	}
}

// Start begins the background refresh loop
func (t *SummaryRefresher) Start(ctx context.Context) {
	t.wg.Add(1)
	go t.run(ctx)
}

// Stop gracefully stops the refresher
func (t *SummaryRefresher) Stop() {
	close(t.stopCh)
	t.wg.Wait()
}

// run is the main loop that periodically refreshes every account
func (t *SummaryRefresher) run(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.refreshAll(ctx)
			t.summaryCache.Cleanup()
		}
	}
}

// refreshAll re-syncs and recomputes every registered account. A failure on
// one account never blocks the others.
func (t *SummaryRefresher) refreshAll(ctx context.Context) {
	accounts, err := t.accountRepo.List(ctx, 1000)
	if err != nil {
		log.Printf("summary refresher: failed to list accounts: %v", err)
		return
	}

	for _, account := range accounts {
		if err := t.refreshAccount(ctx, account.ID); err != nil {
			log.Printf("summary refresher: failed to refresh %s: %v", account.ID, err)
			continue
		}
		t.markRefreshed(account.ID)
	}
}

// refreshAccount syncs the snapshot and recomputes the summary. A sync
// failure is tolerated: the summary is still recomputed from the data we
// already have.
func (t *SummaryRefresher) refreshAccount(ctx context.Context, accountID string) error {
	if err := t.syncService.SyncAccount(ctx, accountID); err != nil {
		log.Printf("summary refresher: sync incomplete for %s: %v", accountID, err)
	}

	_, err := t.wrappedService.RefreshWrappedSummary(ctx, accountID)
	return err
}

func (t *SummaryRefresher) markRefreshed(accountID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRefresh[accountID] = time.Now()
}

// LastRefresh returns the time of the last successful refresh for an account
// and false when the account has never been refreshed.
func (t *SummaryRefresher) LastRefresh(accountID string) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ts, ok := t.lastRefresh[accountID]
	return ts, ok
}
