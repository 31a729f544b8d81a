package analytics

import (
	"math"
	"testing"
	"time"

	"sound-rewind/internal/domain"
)

func trendTrack(id string, playbacks int64, released time.Time) *domain.Track {
	return &domain.Track{ID: id, PlaybackCount: playbacks, ReleasedAt: released}
}

func playEvent(trackID string, at time.Time) *domain.ActivityEvent {
	return &domain.ActivityEvent{TrackID: trackID, Kind: domain.EventPlay, OccurredAt: at}
}

func trackMap(tracks ...*domain.Track) map[string]*domain.Track {
	m := make(map[string]*domain.Track, len(tracks))
	for _, tr := range tracks {
		m[tr.ID] = tr
	}
	return m
}

func TestTrendsetterScorer_NoPlays(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())

	result := scorer.Score(nil, nil)

	if result.Badge != domain.BadgeListener {
		t.Errorf("Badge = %q, want Listener", result.Badge)
	}
	if result.Score != 0 {
		t.Errorf("Score = %.1f, want 0", result.Score)
	}
}

func TestTrendsetterScorer_VisionaryPick(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())
	released := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tr := trendTrack("t1", 500_000, released)
	events := []*domain.ActivityEvent{
		playEvent("t1", released.Add(2*24*time.Hour)),
	}

	result := scorer.Score(events, trackMap(tr))

	if result.VisionaryTracks != 1 {
		t.Errorf("VisionaryTracks = %d, want 1", result.VisionaryTracks)
	}
	if result.EarlyAdopterTracks != 1 {
		t.Errorf("EarlyAdopterTracks = %d, want 1", result.EarlyAdopterTracks)
	}
	// 10 early points + 25*log10(500000) = 152.5
	want := math.Round((10+25*math.Log10(500_000))*10) / 10
	if result.Score != want {
		t.Errorf("Score = %.1f, want %.1f", result.Score, want)
	}
	if result.Badge != domain.BadgeTrendsetter {
		t.Errorf("Badge = %q, want Trendsetter", result.Badge)
	}
	if result.Description == "" {
		t.Error("expected a tier description")
	}
}

func TestTrendsetterScorer_EarlyPlayWithoutBreakout(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())
	released := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tr := trendTrack("t1", 4000, released) // never broke out
	events := []*domain.ActivityEvent{
		playEvent("t1", released.Add(3*24*time.Hour)),
	}

	result := scorer.Score(events, trackMap(tr))

	if result.VisionaryTracks != 0 {
		t.Errorf("VisionaryTracks = %d, want 0", result.VisionaryTracks)
	}
	if result.EarlyAdopterTracks != 1 {
		t.Errorf("EarlyAdopterTracks = %d, want 1", result.EarlyAdopterTracks)
	}
	if result.Score != 10.0 {
		t.Errorf("Score = %.1f, want 10.0", result.Score)
	}
	if result.Badge != domain.BadgeExplorer {
		t.Errorf("Badge = %q, want Explorer", result.Badge)
	}
}

func TestTrendsetterScorer_ReplaysDoNotRequalify(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())
	released := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tr := trendTrack("t1", 4000, released)
	events := []*domain.ActivityEvent{
		playEvent("t1", released.Add(2*24*time.Hour)),
		playEvent("t1", released.Add(3*24*time.Hour)),
		playEvent("t1", released.Add(4*24*time.Hour)),
	}

	result := scorer.Score(events, trackMap(tr))

	if result.EarlyAdopterTracks != 1 {
		t.Errorf("EarlyAdopterTracks = %d, want 1 (replays must not recount)", result.EarlyAdopterTracks)
	}
	if result.Score != 10.0 {
		t.Errorf("Score = %.1f, want 10.0", result.Score)
	}
}

func TestTrendsetterScorer_FirstPlayIsEarliestRegardlessOfLogOrder(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())
	released := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tr := trendTrack("t1", 4000, released)
	// Late play appears before the early one in the log.
	events := []*domain.ActivityEvent{
		playEvent("t1", released.Add(60*24*time.Hour)),
		playEvent("t1", released.Add(1*24*time.Hour)),
	}

	result := scorer.Score(events, trackMap(tr))

	if result.EarlyAdopterTracks != 1 {
		t.Errorf("EarlyAdopterTracks = %d, want 1 (earliest timestamp wins)", result.EarlyAdopterTracks)
	}
}

func TestTrendsetterScorer_PlayBeforeReleaseClampsToZero(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())
	released := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tr := trendTrack("t1", 4000, released)
	events := []*domain.ActivityEvent{
		playEvent("t1", released.Add(-time.Hour)),
	}

	result := scorer.Score(events, trackMap(tr))

	if result.EarlyAdopterTracks != 1 {
		t.Errorf("EarlyAdopterTracks = %d, want 1 (pre-release play counts as day zero)", result.EarlyAdopterTracks)
	}
}

func TestTrendsetterScorer_SkipsUnknownAndUndatedTracks(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())
	undated := &domain.Track{ID: "t1", PlaybackCount: 500_000}
	events := []*domain.ActivityEvent{
		playEvent("t1", time.Now()),
		playEvent("missing", time.Now()),
	}

	result := scorer.Score(events, trackMap(undated))

	if result.Score != 0 || result.Badge != domain.BadgeListener {
		t.Errorf("got score %.1f badge %q, want 0 and Listener", result.Score, result.Badge)
	}
}

func TestTrendsetterScorer_VisionaryTierViaCount(t *testing.T) {
	scorer := NewTrendsetterScorer(DefaultConfig())
	released := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tracks := []*domain.Track{
		trendTrack("t1", 200_000, released),
		trendTrack("t2", 300_000, released),
		trendTrack("t3", 400_000, released),
	}
	var events []*domain.ActivityEvent
	for _, tr := range tracks {
		events = append(events, playEvent(tr.ID, released.Add(10*24*time.Hour)))
	}

	result := scorer.Score(events, trackMap(tracks...))

	if result.VisionaryTracks != 3 {
		t.Fatalf("VisionaryTracks = %d, want 3", result.VisionaryTracks)
	}
	if result.Badge != domain.BadgeVisionary {
		t.Errorf("Badge = %q, want Visionary", result.Badge)
	}
}
