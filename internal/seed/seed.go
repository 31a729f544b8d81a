// Package seed installs demo fixture data so the wrapped engine can be
// exercised without upstream platform credentials.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"sound-rewind/internal/domain"
	"sound-rewind/internal/repository"
)

// timeNow is a variable for testing purposes
var timeNow = time.Now

// DemoHandle is the platform handle of the seeded demo account.
const DemoHandle = "demo-listener"

// Seeder handles database seeding with demo listener data
type Seeder struct {
	accountRepo  repository.AccountRepository
	trackRepo    repository.TrackRepository
	activityRepo repository.ActivityEventRepository
	followRepo   repository.FollowedAccountRepository
}

// NewSeeder creates a new Seeder instance
func NewSeeder(
	accountRepo repository.AccountRepository,
	trackRepo repository.TrackRepository,
	activityRepo repository.ActivityEventRepository,
	followRepo repository.FollowedAccountRepository,
) *Seeder {
	return &Seeder{
		accountRepo:  accountRepo,
		trackRepo:    trackRepo,
		activityRepo: activityRepo,
		followRepo:   followRepo,
	}
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	AccountID string
	Created   bool
	Tracks    int
	Events    int
	Followed  int
}

// SeedDemoAccount installs the demo account with its track corpus, activity
// log and followed accounts. The operation is idempotent: when the demo
// account already exists nothing is written.
func (s *Seeder) SeedDemoAccount(ctx context.Context) (*SeedResult, error) {
	if existing, err := s.accountRepo.GetByHandle(ctx, DemoHandle); err == nil {
		log.Printf("Demo account already seeded (id %s), skipping", existing.ID)
		return &SeedResult{AccountID: existing.ID, Created: false}, nil
	}

	now := timeNow()
	account := &domain.Account{
		ID:        uuid.New().String(),
		Handle:    DemoHandle,
		Name:      "Demo Listener",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create demo account: %w", err)
	}

	tracks := demoTracks(now)
	for _, track := range tracks {
		if err := s.trackRepo.Upsert(ctx, account.ID, track); err != nil {
			return nil, fmt.Errorf("failed to seed track %s: %w", track.ID, err)
		}
	}

	events := demoEvents(account.ID, tracks, now)
	for _, event := range events {
		if err := s.activityRepo.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("failed to seed event: %w", err)
		}
	}

	followed := demoFollowed(tracks)
	if err := s.followRepo.Replace(ctx, account.ID, followed); err != nil {
		return nil, fmt.Errorf("failed to seed followed accounts: %w", err)
	}

	log.Printf("Seeded demo account %s with %d tracks, %d events, %d followed accounts",
		account.ID, len(tracks), len(events), len(followed))

	return &SeedResult{
		AccountID: account.ID,
		Created:   true,
		Tracks:    len(tracks),
		Events:    len(events),
		Followed:  len(followed),
	}, nil
}

// demoTracks builds a corpus spanning mainstream and underground artists
// across several genres, with release dates spread over the last year.
func demoTracks(now time.Time) []*domain.Track {
	known := func(n int) domain.Artist {
		return domain.Artist{FollowerCount: n, FollowerCountKnown: true}
	}

	tracks := []*domain.Track{
		{
			ID: "t-midnight-static", Title: "Midnight Static",
			Artist: known(2300), Genre: "lo-fi", Tags: "chill, study",
			Duration: 3 * time.Minute, PlaybackCount: 41_000,
			LikeCount: 900, RepostCount: 120,
			ReleasedAt: now.AddDate(0, -11, 0),
		},
		{
			ID: "t-neon-rooftops", Title: "Neon Rooftops",
			Artist: known(1_200_000), Genre: "electronic", GenreFamily: "dance",
			Duration: 4 * time.Minute, PlaybackCount: 8_400_000,
			LikeCount: 310_000, RepostCount: 52_000,
			ReleasedAt: now.AddDate(0, -9, 0),
		},
		{
			ID: "t-paper-lanterns", Title: "Paper Lanterns",
			Artist: known(4100), Genre: "indie", Tags: "dream pop",
			Duration: 3*time.Minute + 30*time.Second, PlaybackCount: 18_000,
			LikeCount: 420, RepostCount: 61,
			ReleasedAt: now.AddDate(0, -7, 0),
		},
		{
			ID: "t-basement-tape", Title: "Basement Tape",
			Artist: known(800), Genre: "hiphop", Tags: "boom bap",
			Duration: 2*time.Minute + 45*time.Second, PlaybackCount: 5200,
			LikeCount: 130, RepostCount: 20,
			ReleasedAt: now.AddDate(0, -6, 0),
		},
		{
			ID: "t-glass-waves", Title: "Glass Waves",
			Artist: known(96_000), Genre: "Drum & Bass",
			Duration: 5 * time.Minute, PlaybackCount: 640_000,
			LikeCount: 21_000, RepostCount: 3400,
			ReleasedAt: now.AddDate(0, -2, 0),
		},
		{
			ID: "t-first-light", Title: "First Light",
			Artist: known(300_000), Genre: "electronic", Tags: "melodic, breakout",
			Duration: 4 * time.Minute, PlaybackCount: 2_100_000,
			LikeCount: 85_000, RepostCount: 9800,
			ReleasedAt: now.AddDate(0, 0, -20),
		},
		{
			ID: "t-quiet-hours", Title: "Quiet Hours",
			Artist: known(1900), Genre: "ambient",
			Duration: 6 * time.Minute, PlaybackCount: 9400,
			LikeCount: 260, RepostCount: 44,
			ReleasedAt: now.AddDate(0, 0, -5),
		},
	}

	names := []string{"Static Bloom", "Vela", "Paper Cranes", "MC Ledger", "Subframe", "Aurelle", "Hollow Pines"}
	for i, track := range tracks {
		track.Artist.ID = fmt.Sprintf("a-%02d", i+1)
		track.Artist.Name = names[i]
	}
	return tracks
}

// demoEvents builds an activity log with a clear evening listening peak and
// plays early enough after two releases to exercise the adoption scoring.
func demoEvents(accountID string, tracks []*domain.Track, now time.Time) []*domain.ActivityEvent {
	var events []*domain.ActivityEvent

	add := func(trackID string, kind domain.EventKind, at time.Time, played time.Duration) {
		events = append(events, &domain.ActivityEvent{
			ID:           uuid.New().String(),
			AccountID:    accountID,
			TrackID:      trackID,
			Kind:         kind,
			PlayDuration: played,
			OccurredAt:   at,
		})
	}

	// Regular evening plays over the last few weeks.
	for week := 0; week < 4; week++ {
		for i, track := range tracks {
			at := now.AddDate(0, 0, -7*week-i%3)
			at = time.Date(at.Year(), at.Month(), at.Day(), 19+i%3, 12, 0, 0, time.UTC)
			add(track.ID, domain.EventPlay, at, track.Duration)
		}
	}

	// Early plays: within a week of release for two tracks, one of which has
	// since broken out.
	for _, track := range tracks {
		switch track.ID {
		case "t-first-light":
			add(track.ID, domain.EventPlay, track.ReleasedAt.Add(36*time.Hour), track.Duration)
		case "t-quiet-hours":
			add(track.ID, domain.EventPlay, track.ReleasedAt.Add(2*24*time.Hour), track.Duration)
		}
	}

	// Likes and reposts, including one repost of a track that went trending.
	add("t-neon-rooftops", domain.EventLike, now.AddDate(0, -3, 0), 0)
	add("t-first-light", domain.EventRepost, now.AddDate(0, 0, -18), 0)
	add("t-basement-tape", domain.EventRepost, now.AddDate(0, -4, 0), 0)
	add("t-paper-lanterns", domain.EventShare, now.AddDate(0, -1, 0), 0)

	return events
}

// demoFollowed builds followed accounts with overlapping liked sets so the
// taste matching has a qualifying candidate.
func demoFollowed(tracks []*domain.Track) []*domain.FollowedAccount {
	return []*domain.FollowedAccount{
		{
			ID: "f-echo", Name: "echo-chamber",
			LikedTracks:  []string{"t-neon-rooftops", "t-first-light", "t-glass-waves"},
			LikedArtists: []string{"Vela", "Subframe", "Aurelle"},
			LikedGenres:  []string{"electronic", "drum and bass"},
		},
		{
			ID: "f-drift", Name: "driftwood",
			LikedTracks:  []string{"t-midnight-static"},
			LikedArtists: []string{"Static Bloom"},
			LikedGenres:  []string{"lofi", "ambient"},
		},
		{
			ID: "f-orbit", Name: "orbital-decay",
			LikedTracks:  []string{},
			LikedArtists: []string{"MC Ledger"},
			LikedGenres:  []string{"rap"},
		},
	}
}
