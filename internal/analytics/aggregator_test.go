package analytics

import (
	"testing"
	"time"

	"sound-rewind/internal/domain"
)

func TestNewAggregator_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopGenres = 0

	if _, err := NewAggregator(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestAggregator_EmptySnapshot(t *testing.T) {
	aggregator, err := NewAggregator(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	summary := aggregator.Summarize(Snapshot{AccountID: "acc-1", Now: now})

	if summary.AccountID != "acc-1" {
		t.Errorf("AccountID = %q, want acc-1", summary.AccountID)
	}
	if !summary.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %s, want %s", summary.GeneratedAt, now)
	}
	if summary.Genres != nil {
		t.Error("Genres should be omitted for an empty corpus")
	}
	if summary.Listening != nil {
		t.Error("Listening should be omitted with no play events")
	}
	if summary.Underground != nil {
		t.Error("Underground should be omitted with no known follower counts")
	}
	// Scorers and matcher are total: they always produce a result.
	if summary.Trendsetter == nil || summary.Trendsetter.Badge != domain.BadgeListener {
		t.Error("Trendsetter should resolve to the default tier")
	}
	if summary.Reposts == nil || summary.Reposts.Badge != domain.BadgeListener {
		t.Error("Reposts should resolve to the default tier")
	}
	if summary.Doppelganger == nil || summary.Doppelganger.Reason != domain.NoMatchNoFollowedAccounts {
		t.Error("Doppelganger should carry the no-followed-accounts reason")
	}
}

func TestAggregator_TracksWithoutActivity(t *testing.T) {
	aggregator, err := NewAggregator(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	summary := aggregator.Summarize(Snapshot{
		AccountID: "acc-1",
		Tracks: []*domain.Track{
			{ID: "t1", Genre: "techno", Duration: 3 * time.Minute},
		},
		Now: now,
	})

	if summary.TrackCount != 1 || summary.EventCount != 0 {
		t.Fatalf("counts = %d/%d, want 1 track and 0 events",
			summary.TrackCount, summary.EventCount)
	}
	if summary.Genres == nil {
		t.Error("Genres must be present for a non-empty corpus even without plays")
	}
	if summary.Listening != nil {
		t.Error("Listening must be omitted when the activity log is empty")
	}
}

func TestAggregator_FullSnapshot(t *testing.T) {
	aggregator, err := NewAggregator(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	released := now.AddDate(0, -2, 0)
	tracks := []*domain.Track{
		{
			ID: "t1", Genre: "techno", Duration: 4 * time.Minute,
			PlaybackCount: 500_000, RepostCount: 5000, ReleasedAt: released,
			Artist: domain.Artist{Name: "Vela", FollowerCount: 900, FollowerCountKnown: true},
		},
		{
			ID: "t2", Genre: "house", Duration: 3 * time.Minute,
			PlaybackCount: 2000, RepostCount: 10, ReleasedAt: released,
			Artist: domain.Artist{Name: "Subframe", FollowerCount: 2_000_000, FollowerCountKnown: true},
		},
	}
	events := []*domain.ActivityEvent{
		{TrackID: "t1", Kind: domain.EventPlay, PlayDuration: 4 * time.Minute, OccurredAt: released.Add(24 * time.Hour)},
		{TrackID: "t2", Kind: domain.EventPlay, PlayDuration: 3 * time.Minute, OccurredAt: now.Add(-time.Hour)},
		{TrackID: "t1", Kind: domain.EventRepost, OccurredAt: now.AddDate(0, -1, 0)},
	}
	followed := []*domain.FollowedAccount{
		{ID: "f1", Name: "echo", LikedTracks: []string{"t1"}, LikedGenres: []string{"techno"}},
	}

	summary := aggregator.Summarize(Snapshot{
		AccountID: "acc-1",
		Tracks:    tracks,
		Events:    events,
		Followed:  followed,
		Now:       now,
	})

	if summary.TrackCount != 2 || summary.EventCount != 3 {
		t.Errorf("counts = %d/%d, want 2/3", summary.TrackCount, summary.EventCount)
	}
	if summary.Genres == nil || summary.Genres.DiscoveryCount != 2 {
		t.Error("expected a genre report with two genres")
	}
	if summary.Listening == nil || !summary.Listening.HasData {
		t.Error("expected a listening pattern")
	}
	if summary.Underground == nil {
		t.Fatal("expected an underground result")
	}
	// 4m of 7m listening goes to the 900-follower artist
	if summary.Underground.Percent != 57.1 {
		t.Errorf("Underground.Percent = %.1f, want 57.1", summary.Underground.Percent)
	}
	if summary.Trendsetter == nil || summary.Trendsetter.VisionaryTracks != 1 {
		t.Error("expected one visionary track")
	}
	if summary.Reposts == nil || summary.Reposts.TrendingTracks != 1 {
		t.Error("expected one trending repost")
	}
	if summary.Doppelganger == nil || !summary.Doppelganger.Matched {
		t.Error("expected a doppelganger match")
	}
}

// The aggregator fans sub-computations out onto goroutines; repeated runs
// over the same snapshot must still be byte-for-byte identical.
func TestAggregator_Deterministic(t *testing.T) {
	aggregator, err := NewAggregator(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		AccountID: "acc-1",
		Tracks: []*domain.Track{
			{ID: "t1", Genre: "techno", Duration: time.Minute,
				Artist: domain.Artist{Name: "Vela", FollowerCount: 10, FollowerCountKnown: true}},
		},
		Events: []*domain.ActivityEvent{
			{TrackID: "t1", Kind: domain.EventPlay, PlayDuration: time.Minute, OccurredAt: now.Add(-time.Hour)},
		},
		Followed: []*domain.FollowedAccount{
			{ID: "f1", LikedTracks: []string{"t1"}},
		},
		Now: now,
	}

	first := aggregator.Summarize(snap)
	for i := 0; i < 10; i++ {
		next := aggregator.Summarize(snap)
		if *next.Underground != *first.Underground ||
			*next.Trendsetter != *first.Trendsetter ||
			*next.Reposts != *first.Reposts ||
			*next.Doppelganger != *first.Doppelganger {
			t.Fatal("repeated aggregation produced differing results")
		}
	}
}
