package analytics

import (
	"testing"
	"time"

	"sound-rewind/internal/domain"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got: %v", err)
	}
}

func TestConfigValidate_Defects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero top genres", func(c *Config) { c.TopGenres = 0 }},
		{"negative follower threshold", func(c *Config) { c.UndergroundFollowerThreshold = -1 }},
		{"zero early window", func(c *Config) { c.EarlyAdopterWindow = 0 }},
		{"visionary window shorter than early", func(c *Config) {
			c.VisionaryWindow = c.EarlyAdopterWindow - time.Hour
		}},
		{"negative breakout threshold", func(c *Config) { c.BreakoutPlaybackThreshold = -1 }},
		{"negative visionary weight", func(c *Config) { c.VisionaryWeight = -1 }},
		{"zero repost window", func(c *Config) { c.RepostWindow = 0 }},
		{"negative trending threshold", func(c *Config) { c.TrendingRepostThreshold = -1 }},
		{"negative similarity weight", func(c *Config) { c.TrackWeight = -0.5 }},
		{"all-zero similarity weights", func(c *Config) {
			c.TrackWeight, c.ArtistWeight, c.GenreWeight = 0, 0, 0
		}},
		{"disabled overlap floor", func(c *Config) {
			c.MinSharedTracks, c.MinSharedArtists = 0, 0
		}},
		{"empty trendsetter ladder", func(c *Config) { c.TrendsetterTiers = nil }},
		{"empty repost ladder", func(c *Config) { c.RepostTiers = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateTrendsetterTiers(t *testing.T) {
	t.Run("misordered ladder rejected", func(t *testing.T) {
		tiers := []TrendsetterTier{
			{Badge: domain.BadgeExplorer, MinEarly: 1},
			{Badge: domain.BadgeVisionary, MinVisionary: 3},
			{Badge: domain.BadgeListener},
		}
		if err := validateTrendsetterTiers(tiers); err == nil {
			t.Error("expected error for ladder not ordered highest to lowest")
		}
	})

	t.Run("conditional final tier rejected", func(t *testing.T) {
		tiers := []TrendsetterTier{
			{Badge: domain.BadgeVisionary, MinVisionary: 3},
			{Badge: domain.BadgeListener, MinScore: 1},
		}
		if err := validateTrendsetterTiers(tiers); err == nil {
			t.Error("expected error for final tier with gates")
		}
	})

	t.Run("unknown badge rejected", func(t *testing.T) {
		tiers := []TrendsetterTier{
			{Badge: domain.Badge("Wizard"), MinScore: 5},
			{Badge: domain.BadgeListener},
		}
		if err := validateTrendsetterTiers(tiers); err == nil {
			t.Error("expected error for unknown badge")
		}
	})
}

func TestResolveTiers_TopDownEitherGate(t *testing.T) {
	tiers := DefaultTrendsetterTiers()

	tests := []struct {
		name             string
		visionary, early int
		score            float64
		expected         domain.Badge
	}{
		{"nothing", 0, 0, 0, domain.BadgeListener},
		{"one early play", 0, 1, 10, domain.BadgeExplorer},
		{"three early plays", 0, 3, 30, domain.BadgeEarlyAdopter},
		{"score gate alone", 0, 0, 150, domain.BadgeTrendsetter},
		{"one visionary", 1, 0, 120, domain.BadgeTrendsetter},
		{"three visionary", 3, 0, 350, domain.BadgeVisionary},
		{"score 400", 0, 0, 400, domain.BadgeVisionary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := resolveTrendsetterTier(tiers, tt.visionary, tt.early, tt.score)
			if tier.Badge != tt.expected {
				t.Errorf("resolve(%d, %d, %.0f) = %q, want %q",
					tt.visionary, tt.early, tt.score, tier.Badge, tt.expected)
			}
		})
	}
}

func TestResolveRepostTiers(t *testing.T) {
	tiers := DefaultRepostTiers()

	tests := []struct {
		name     string
		trending int
		percent  float64
		expected domain.Badge
	}{
		{"nothing", 0, 0, domain.BadgeListener},
		{"one trending", 1, 10, domain.BadgeCurator},
		{"quarter rate", 1, 25, domain.BadgeTastemaker},
		{"five trending", 5, 20, domain.BadgeAmplifier},
		{"high rate", 1, 80, domain.BadgeHitmaker},
		{"ten trending", 10, 40, domain.BadgeHitmaker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := resolveRepostTier(tiers, tt.trending, tt.percent)
			if tier.Badge != tt.expected {
				t.Errorf("resolve(%d, %.0f) = %q, want %q",
					tt.trending, tt.percent, tier.Badge, tt.expected)
			}
		})
	}
}
