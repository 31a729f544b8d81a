package analytics

import (
	"math"
	"time"

	"sound-rewind/internal/domain"
)

// UndergroundSupportCalculator computes what share of an account's listening
// time goes to artists below a follower-count threshold.
type UndergroundSupportCalculator struct {
	followerThreshold int
}

// NewUndergroundSupportCalculator creates a calculator with the given
// follower threshold. Artists strictly below the threshold count as
// underground.
func NewUndergroundSupportCalculator(followerThreshold int) *UndergroundSupportCalculator {
	return &UndergroundSupportCalculator{followerThreshold: followerThreshold}
}

// Calculate sums listening time over all tracks and over tracks whose artist
// is underground, and returns the percentage rounded to one decimal. Tracks
// with an unknown follower count are excluded from both sums; when no track
// has a known count the second return value is false and the result should
// be omitted from the aggregate. Zero total listening time yields 0.0 by
// definition, not an error.
func (c *UndergroundSupportCalculator) Calculate(tracks []*domain.Track, times map[string]time.Duration) (domain.UndergroundResult, bool) {
	var total, underground time.Duration
	considered := 0

	for _, track := range tracks {
		if !track.Artist.FollowerCountKnown {
			continue
		}
		considered++
		t := times[track.ID]
		total += t
		if track.Artist.FollowerCount < c.followerThreshold {
			underground += t
		}
	}

	if considered == 0 {
		return domain.UndergroundResult{}, false
	}

	result := domain.UndergroundResult{TracksConsidered: considered}
	if total > 0 {
		pct := float64(underground) / float64(total) * 100
		result.Percent = math.Round(pct*10) / 10
	}
	return result, true
}
