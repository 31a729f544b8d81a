package analytics

import (
	"time"

	"sound-rewind/internal/domain"
)

// ListeningTimes derives per-track listening time from play activity.
// A track's time is the sum of its PLAY event durations when any exist;
// otherwise the track's own duration stands in as a conservative
// single-play estimate. Non-play events never contribute.
func ListeningTimes(tracks []*domain.Track, events []*domain.ActivityEvent) map[string]time.Duration {
	times := make(map[string]time.Duration, len(tracks))

	played := make(map[string]time.Duration)
	for _, ev := range events {
		if ev.Kind != domain.EventPlay {
			continue
		}
		if ev.PlayDuration > 0 {
			played[ev.TrackID] += ev.PlayDuration
		}
	}

	for _, track := range tracks {
		if t, ok := played[track.ID]; ok {
			times[track.ID] = t
		} else {
			times[track.ID] = track.Duration
		}
	}

	return times
}
