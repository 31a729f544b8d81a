package analytics

import (
	"math"
	"time"

	"sound-rewind/internal/domain"
)

// RepostScorer classifies an account's reposts by whether the reposted track
// later reached a trending repost count.
type RepostScorer struct {
	cfg Config
}

// NewRepostScorer creates a scorer using the config's trailing window,
// trending threshold and badge ladder.
func NewRepostScorer(cfg Config) *RepostScorer {
	return &RepostScorer{cfg: cfg}
}

// Score counts distinct reposted tracks within the trailing window ending at
// now and classifies each as trending when its current repost count exceeds
// the threshold. Success rate is trending over total, 0 when nothing was
// reposted. Reposted tracks missing from the corpus are counted but cannot
// qualify as trending.
func (s *RepostScorer) Score(events []*domain.ActivityEvent, tracks map[string]*domain.Track, now time.Time) *domain.RepostResult {
	cutoff := now.Add(-s.cfg.RepostWindow)

	reposted := make(map[string]struct{})
	for _, ev := range events {
		if ev.Kind != domain.EventRepost {
			continue
		}
		if ev.OccurredAt.Before(cutoff) || ev.OccurredAt.After(now) {
			continue
		}
		reposted[ev.TrackID] = struct{}{}
	}

	trending := 0
	for trackID := range reposted {
		track, ok := tracks[trackID]
		if !ok {
			continue
		}
		if track.RepostCount > s.cfg.TrendingRepostThreshold {
			trending++
		}
	}

	var rate float64
	if len(reposted) > 0 {
		rate = float64(trending) / float64(len(reposted)) * 100
		rate = math.Round(rate*10) / 10
	}

	tier := resolveRepostTier(s.cfg.RepostTiers, trending, rate)

	return &domain.RepostResult{
		RepostedTracks: len(reposted),
		TrendingTracks: trending,
		SuccessRate:    rate,
		Badge:          tier.Badge,
		Description:    tier.Description,
	}
}
