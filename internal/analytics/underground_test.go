package analytics

import (
	"testing"
	"time"

	"sound-rewind/internal/domain"
)

func trackWithFollowers(id string, followers int, dur time.Duration) *domain.Track {
	return &domain.Track{
		ID:       id,
		Duration: dur,
		Artist: domain.Artist{
			Name:               "artist-" + id,
			FollowerCount:      followers,
			FollowerCountKnown: true,
		},
	}
}

func TestUndergroundSupport_AllUnknownFollowers(t *testing.T) {
	calc := NewUndergroundSupportCalculator(5000)
	tracks := []*domain.Track{
		{ID: "t1", Duration: 3 * time.Minute},
		{ID: "t2", Duration: 3 * time.Minute},
	}
	times := ListeningTimes(tracks, nil)

	_, ok := calc.Calculate(tracks, times)

	if ok {
		t.Error("expected no result when no track has a known follower count")
	}
}

func TestUndergroundSupport_Percentage(t *testing.T) {
	calc := NewUndergroundSupportCalculator(5000)
	tracks := []*domain.Track{
		trackWithFollowers("t1", 100, 6*time.Minute),       // underground
		trackWithFollowers("t2", 1_000_000, 3*time.Minute), // mainstream
		{ID: "t3", Duration: 10 * time.Minute},             // unknown, excluded
	}
	times := ListeningTimes(tracks, nil)

	result, ok := calc.Calculate(tracks, times)

	if !ok {
		t.Fatal("expected a result")
	}
	if result.TracksConsidered != 2 {
		t.Errorf("TracksConsidered = %d, want 2", result.TracksConsidered)
	}
	// 6m underground out of 9m total = 66.7%
	if result.Percent != 66.7 {
		t.Errorf("Percent = %.1f, want 66.7", result.Percent)
	}
}

func TestUndergroundSupport_ThresholdIsExclusive(t *testing.T) {
	calc := NewUndergroundSupportCalculator(5000)
	tracks := []*domain.Track{
		trackWithFollowers("t1", 5000, 3*time.Minute), // exactly at threshold: not underground
		trackWithFollowers("t2", 4999, 3*time.Minute), // strictly below: underground
	}
	times := ListeningTimes(tracks, nil)

	result, ok := calc.Calculate(tracks, times)

	if !ok {
		t.Fatal("expected a result")
	}
	if result.Percent != 50.0 {
		t.Errorf("Percent = %.1f, want 50.0", result.Percent)
	}
}

func TestUndergroundSupport_ZeroListeningTime(t *testing.T) {
	calc := NewUndergroundSupportCalculator(5000)
	tracks := []*domain.Track{
		trackWithFollowers("t1", 100, 0),
	}
	times := ListeningTimes(tracks, nil)

	result, ok := calc.Calculate(tracks, times)

	if !ok {
		t.Fatal("expected a result; zero time is defined, not an error")
	}
	if result.Percent != 0.0 {
		t.Errorf("Percent = %.1f, want 0.0", result.Percent)
	}
}
