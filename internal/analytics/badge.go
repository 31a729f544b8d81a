package analytics

import (
	"fmt"

	"sound-rewind/internal/domain"
)

// badgeRank orders every badge used by the two ladders. Higher is better.
// Validation leans on this table to reject ladders that are not listed
// from highest tier to lowest.
var badgeRank = map[domain.Badge]int{
	domain.BadgeListener:     0,
	domain.BadgeExplorer:     1,
	domain.BadgeCurator:      1,
	domain.BadgeEarlyAdopter: 2,
	domain.BadgeTastemaker:   2,
	domain.BadgeTrendsetter:  3,
	domain.BadgeAmplifier:    3,
	domain.BadgeVisionary:    4,
	domain.BadgeHitmaker:     4,
}

// TrendsetterTier is one rung of the trendsetter badge ladder. A tier is
// unlocked when any enabled gate is met: visionary-track count, early-track
// count, or total score. A gate with a zero threshold is disabled. The final
// tier of a ladder should have no gates so it acts as the universal default.
type TrendsetterTier struct {
	Badge        domain.Badge
	MinVisionary int
	MinEarly     int
	MinScore     float64
	Description  string
}

func (t TrendsetterTier) qualifies(visionary, early int, score float64) bool {
	if t.MinVisionary > 0 && visionary >= t.MinVisionary {
		return true
	}
	if t.MinEarly > 0 && early >= t.MinEarly {
		return true
	}
	if t.MinScore > 0 && score >= t.MinScore {
		return true
	}
	return t.MinVisionary == 0 && t.MinEarly == 0 && t.MinScore == 0
}

// DefaultTrendsetterTiers returns the production trendsetter ladder,
// highest tier first.
func DefaultTrendsetterTiers() []TrendsetterTier {
	return []TrendsetterTier{
		{
			Badge:        domain.BadgeVisionary,
			MinVisionary: 3,
			MinScore:     400,
			Description:  "You heard tomorrow's hits before anyone else did.",
		},
		{
			Badge:        domain.BadgeTrendsetter,
			MinVisionary: 1,
			MinScore:     150,
			Description:  "Tracks you found early went on to blow up.",
		},
		{
			Badge:       domain.BadgeEarlyAdopter,
			MinEarly:    3,
			MinScore:    60,
			Description: "You are reliably among the first listeners.",
		},
		{
			Badge:       domain.BadgeExplorer,
			MinEarly:    1,
			MinScore:    10,
			Description: "You caught a fresh release within its first week.",
		},
		{
			Badge:       domain.BadgeListener,
			Description: "You listen on your own schedule.",
		},
	}
}

// resolveTrendsetterTier walks the ladder top-down and returns the first
// qualifying tier. Resolution is total: the default tier at the bottom
// guarantees every input maps to exactly one badge.
func resolveTrendsetterTier(tiers []TrendsetterTier, visionary, early int, score float64) TrendsetterTier {
	for _, tier := range tiers {
		if tier.qualifies(visionary, early, score) {
			return tier
		}
	}
	return tiers[len(tiers)-1]
}

func validateTrendsetterTiers(tiers []TrendsetterTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("ladder cannot be empty")
	}
	for i, tier := range tiers {
		if _, ok := badgeRank[tier.Badge]; !ok {
			return fmt.Errorf("unknown badge %q", tier.Badge)
		}
		if tier.MinVisionary < 0 || tier.MinEarly < 0 || tier.MinScore < 0 {
			return fmt.Errorf("tier %q has a negative threshold", tier.Badge)
		}
		if i > 0 && badgeRank[tier.Badge] >= badgeRank[tiers[i-1].Badge] {
			return fmt.Errorf("ladder must be ordered highest to lowest, %q follows %q", tier.Badge, tiers[i-1].Badge)
		}
	}
	last := tiers[len(tiers)-1]
	if last.MinVisionary != 0 || last.MinEarly != 0 || last.MinScore != 0 {
		return fmt.Errorf("final tier %q must be unconditional", last.Badge)
	}
	return nil
}

// RepostTier is one rung of the repost badge ladder. A tier is unlocked
// when either gate is met: trending-track count or success percentage.
type RepostTier struct {
	Badge       domain.Badge
	MinTrending int
	MinPercent  float64
	Description string
}

func (t RepostTier) qualifies(trending int, percent float64) bool {
	if t.MinTrending > 0 && trending >= t.MinTrending {
		return true
	}
	if t.MinPercent > 0 && percent >= t.MinPercent {
		return true
	}
	return t.MinTrending == 0 && t.MinPercent == 0
}

// DefaultRepostTiers returns the production repost ladder, highest first.
func DefaultRepostTiers() []RepostTier {
	return []RepostTier{
		{
			Badge:       domain.BadgeHitmaker,
			MinTrending: 10,
			MinPercent:  75,
			Description: "Your reposts routinely turn into trending tracks.",
		},
		{
			Badge:       domain.BadgeAmplifier,
			MinTrending: 5,
			MinPercent:  50,
			Description: "Half of what you amplify catches on.",
		},
		{
			Badge:       domain.BadgeTastemaker,
			MinTrending: 2,
			MinPercent:  25,
			Description: "Your reposts have a real hit rate.",
		},
		{
			Badge:       domain.BadgeCurator,
			MinTrending: 1,
			MinPercent:  10,
			Description: "You shared a track that went on to trend.",
		},
		{
			Badge:       domain.BadgeListener,
			Description: "You keep your finds to yourself.",
		},
	}
}

func resolveRepostTier(tiers []RepostTier, trending int, percent float64) RepostTier {
	for _, tier := range tiers {
		if tier.qualifies(trending, percent) {
			return tier
		}
	}
	return tiers[len(tiers)-1]
}

func validateRepostTiers(tiers []RepostTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("ladder cannot be empty")
	}
	for i, tier := range tiers {
		if _, ok := badgeRank[tier.Badge]; !ok {
			return fmt.Errorf("unknown badge %q", tier.Badge)
		}
		if tier.MinTrending < 0 || tier.MinPercent < 0 {
			return fmt.Errorf("tier %q has a negative threshold", tier.Badge)
		}
		if i > 0 && badgeRank[tier.Badge] >= badgeRank[tiers[i-1].Badge] {
			return fmt.Errorf("ladder must be ordered highest to lowest, %q follows %q", tier.Badge, tiers[i-1].Badge)
		}
	}
	last := tiers[len(tiers)-1]
	if last.MinTrending != 0 || last.MinPercent != 0 {
		return fmt.Errorf("final tier %q must be unconditional", last.Badge)
	}
	return nil
}
