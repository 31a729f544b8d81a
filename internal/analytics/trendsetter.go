package analytics

import (
	"math"
	"time"

	"sound-rewind/internal/domain"
)

// TrendsetterScorer classifies first plays by their timing relative to track
// release and scores early adoption of tracks that later broke out.
type TrendsetterScorer struct {
	cfg Config
}

// NewTrendsetterScorer creates a scorer using the config's windows,
// breakout threshold, score curve and badge ladder.
func NewTrendsetterScorer(cfg Config) *TrendsetterScorer {
	return &TrendsetterScorer{cfg: cfg}
}

// Score evaluates the first play of every track in the event log against the
// track's release time and current playback count. Replays never re-qualify
// a track. Visionary tracks contribute VisionaryWeight * log10(playback
// count); early-adopted tracks contribute a flat EarlyPlayPoints each. The
// log curve keeps the score monotone in popularity while damping mega-hit
// dominance. No plays at all resolves to the default tier with zero score.
func (s *TrendsetterScorer) Score(events []*domain.ActivityEvent, tracks map[string]*domain.Track) *domain.TrendsetterResult {
	firstPlays := firstPlayPerTrack(events)

	var visionary, early int
	var score float64

	for trackID, playedAt := range firstPlays {
		track, ok := tracks[trackID]
		if !ok || track.ReleasedAt.IsZero() {
			continue
		}
		sinceRelease := playedAt.Sub(track.ReleasedAt)
		if sinceRelease < 0 {
			// Clock skew between upstream counters; treat as a release-day play.
			sinceRelease = 0
		}

		if sinceRelease <= s.cfg.EarlyAdopterWindow {
			early++
			score += s.cfg.EarlyPlayPoints
		}
		if sinceRelease <= s.cfg.VisionaryWindow && track.PlaybackCount > s.cfg.BreakoutPlaybackThreshold {
			visionary++
			score += s.cfg.VisionaryWeight * math.Log10(float64(track.PlaybackCount))
		}
	}

	score = math.Round(score*10) / 10
	tier := resolveTrendsetterTier(s.cfg.TrendsetterTiers, visionary, early, score)

	return &domain.TrendsetterResult{
		Score:              score,
		Badge:              tier.Badge,
		VisionaryTracks:    visionary,
		EarlyAdopterTracks: early,
		Description:        tier.Description,
	}
}

// firstPlayPerTrack reduces the event log to the earliest play timestamp per
// track. Only timestamp order matters; insertion order of the log does not.
func firstPlayPerTrack(events []*domain.ActivityEvent) map[string]time.Time {
	first := make(map[string]time.Time)
	for _, ev := range events {
		if ev.Kind != domain.EventPlay {
			continue
		}
		if existing, ok := first[ev.TrackID]; !ok || ev.OccurredAt.Before(existing) {
			first[ev.TrackID] = ev.OccurredAt
		}
	}
	return first
}
