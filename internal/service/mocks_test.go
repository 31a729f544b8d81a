package service

import (
	"context"
	"time"

	"sound-rewind/internal/domain"
)

// In-memory repository and adapter doubles. Error fields, when set, are
// returned by the corresponding method instead of touching the maps.

type mockAccountRepo struct {
	accounts map[string]*domain.Account
	getErr   error
}

func newMockAccountRepo(accounts ...*domain.Account) *mockAccountRepo {
	m := &mockAccountRepo{accounts: make(map[string]*domain.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountRepo) Create(_ context.Context, account *domain.Account) error {
	m.accounts[account.ID] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

func (m *mockAccountRepo) GetByHandle(_ context.Context, handle string) (*domain.Account, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, account := range m.accounts {
		if account.Handle == handle {
			return account, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAccountRepo) List(_ context.Context, limit int) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, account := range m.accounts {
		if len(out) == limit {
			break
		}
		out = append(out, account)
	}
	return out, nil
}

func (m *mockAccountRepo) Update(_ context.Context, account *domain.Account) error {
	m.accounts[account.ID] = account
	return nil
}

func (m *mockAccountRepo) Delete(_ context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

type mockTrackRepo struct {
	tracks    map[string][]*domain.Track // keyed by account id
	upsertErr error
	getErr    error
}

func newMockTrackRepo() *mockTrackRepo {
	return &mockTrackRepo{tracks: make(map[string][]*domain.Track)}
}

func (m *mockTrackRepo) Upsert(_ context.Context, accountID string, track *domain.Track) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for i, existing := range m.tracks[accountID] {
		if existing.ID == track.ID {
			m.tracks[accountID][i] = track
			return nil
		}
	}
	m.tracks[accountID] = append(m.tracks[accountID], track)
	return nil
}

func (m *mockTrackRepo) GetByAccountID(_ context.Context, accountID string) ([]*domain.Track, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.tracks[accountID], nil
}

func (m *mockTrackRepo) DeleteByAccountID(_ context.Context, accountID string) error {
	delete(m.tracks, accountID)
	return nil
}

type mockActivityRepo struct {
	events    map[string][]*domain.ActivityEvent
	createErr error
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{events: make(map[string][]*domain.ActivityEvent)}
}

func (m *mockActivityRepo) Create(_ context.Context, event *domain.ActivityEvent) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events[event.AccountID] = append(m.events[event.AccountID], event)
	return nil
}

func (m *mockActivityRepo) GetByAccountID(_ context.Context, accountID string, since time.Time) ([]*domain.ActivityEvent, error) {
	var out []*domain.ActivityEvent
	for _, event := range m.events[accountID] {
		if since.IsZero() || event.OccurredAt.After(since) {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *mockActivityRepo) DeleteByAccountID(_ context.Context, accountID string) error {
	delete(m.events, accountID)
	return nil
}

type mockFollowRepo struct {
	followed   map[string][]*domain.FollowedAccount
	replaceErr error
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{followed: make(map[string][]*domain.FollowedAccount)}
}

func (m *mockFollowRepo) Replace(_ context.Context, accountID string, followed []*domain.FollowedAccount) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.followed[accountID] = followed
	return nil
}

func (m *mockFollowRepo) GetByAccountID(_ context.Context, accountID string) ([]*domain.FollowedAccount, error) {
	return m.followed[accountID], nil
}

type mockSummaryRepo struct {
	summaries map[string]*domain.WrappedSummary
	saveCalls int
	saveErr   error
	getErr    error
}

func newMockSummaryRepo() *mockSummaryRepo {
	return &mockSummaryRepo{summaries: make(map[string]*domain.WrappedSummary)}
}

func (m *mockSummaryRepo) Save(_ context.Context, summary *domain.WrappedSummary) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.summaries[summary.AccountID] = summary
	return nil
}

func (m *mockSummaryRepo) GetByAccountID(_ context.Context, accountID string) (*domain.WrappedSummary, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	summary, ok := m.summaries[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return summary, nil
}

func (m *mockSummaryRepo) Delete(_ context.Context, accountID string) error {
	delete(m.summaries, accountID)
	return nil
}

type mockAdapter struct {
	tracks   []*domain.Track
	events   []*domain.ActivityEvent
	followed []*domain.FollowedAccount

	tracksErr   error
	activityErr error
	followedErr error
}

func (m *mockAdapter) GetAccountTracks(_ context.Context, _ string) ([]*domain.Track, error) {
	if m.tracksErr != nil {
		return nil, m.tracksErr
	}
	return m.tracks, nil
}

func (m *mockAdapter) GetAccountActivity(_ context.Context, _ string) ([]*domain.ActivityEvent, error) {
	if m.activityErr != nil {
		return nil, m.activityErr
	}
	return m.events, nil
}

func (m *mockAdapter) GetFollowedAccounts(_ context.Context, _ string) ([]*domain.FollowedAccount, error) {
	if m.followedErr != nil {
		return nil, m.followedErr
	}
	return m.followed, nil
}
