// Package analytics implements the wrapped analytics engine: genre
// aggregation, listening-pattern classification, underground support,
// early-adoption and repost scoring, and taste-twin matching.
//
// Every component is a pure function over an immutable input snapshot.
// There is no internal state and no I/O; identical inputs always produce
// identical outputs, and any number of invocations may run concurrently.
package analytics

import (
	"fmt"
	"time"
)

// Config carries every tunable constant of the engine. Thresholds and
// weights are configuration, not business logic: the test suite exercises
// boundary values through this surface.
type Config struct {
	// TopGenres caps the top-by-count and top-by-time genre lists.
	TopGenres int

	// UndergroundFollowerThreshold classifies an artist as underground when
	// its follower count is strictly below this value.
	UndergroundFollowerThreshold int

	// EarlyAdopterWindow is the time after release within which a first play
	// counts as early adoption.
	EarlyAdopterWindow time.Duration

	// VisionaryWindow is the time after release within which a first play of
	// a later-breakout track counts as visionary.
	VisionaryWindow time.Duration

	// BreakoutPlaybackThreshold is the playback count a track must exceed
	// for visionary classification.
	BreakoutPlaybackThreshold int64

	// VisionaryWeight scales the log10(playback count) contribution of each
	// visionary track to the trendsetter score.
	VisionaryWeight float64

	// EarlyPlayPoints is the flat score contribution per early-adopted track.
	EarlyPlayPoints float64

	// TrendsetterTiers is the ordered badge ladder for the trendsetter
	// scorer, highest tier first. The final tier is the universal default.
	TrendsetterTiers []TrendsetterTier

	// RepostWindow restricts repost scoring to a trailing time window.
	RepostWindow time.Duration

	// TrendingRepostThreshold is the repost count a track must exceed to
	// classify a repost as trending.
	TrendingRepostThreshold int64

	// RepostTiers is the ordered badge ladder for the repost scorer,
	// highest tier first. The final tier is the universal default.
	RepostTiers []RepostTier

	// Doppelganger similarity blend weights. Tracks weigh most, then
	// artists, then genres, reflecting specificity of the overlap.
	TrackWeight  float64
	ArtistWeight float64
	GenreWeight  float64

	// Minimum-overlap floor: a candidate qualifies with at least
	// MinSharedTracks shared tracks or at least MinSharedArtists shared
	// artists. Below the floor no match is reported.
	MinSharedTracks  int
	MinSharedArtists int
}

// DefaultConfig returns the production defaults. The breakout and trending
// thresholds carry no deeper justification than the reference deployment;
// they are deliberately configuration rather than constants in code.
func DefaultConfig() Config {
	return Config{
		TopGenres:                    5,
		UndergroundFollowerThreshold: 5000,
		EarlyAdopterWindow:           7 * 24 * time.Hour,
		VisionaryWindow:              30 * 24 * time.Hour,
		BreakoutPlaybackThreshold:    100_000,
		VisionaryWeight:              25,
		EarlyPlayPoints:              10,
		TrendsetterTiers:             DefaultTrendsetterTiers(),
		RepostWindow:                 365 * 24 * time.Hour,
		TrendingRepostThreshold:      1000,
		RepostTiers:                  DefaultRepostTiers(),
		TrackWeight:                  0.60,
		ArtistWeight:                 0.25,
		GenreWeight:                  0.15,
		MinSharedTracks:              1,
		MinSharedArtists:             2,
	}
}

// Validate checks the configuration for defects. A failure here indicates a
// programming or deployment error and is the only condition under which the
// engine refuses to compute.
func (c Config) Validate() error {
	if c.TopGenres <= 0 {
		return fmt.Errorf("top genres must be positive, got %d", c.TopGenres)
	}
	if c.UndergroundFollowerThreshold < 0 {
		return fmt.Errorf("underground follower threshold cannot be negative, got %d", c.UndergroundFollowerThreshold)
	}
	if c.EarlyAdopterWindow <= 0 {
		return fmt.Errorf("early adopter window must be positive, got %s", c.EarlyAdopterWindow)
	}
	if c.VisionaryWindow < c.EarlyAdopterWindow {
		return fmt.Errorf("visionary window %s cannot be shorter than early adopter window %s", c.VisionaryWindow, c.EarlyAdopterWindow)
	}
	if c.BreakoutPlaybackThreshold < 0 {
		return fmt.Errorf("breakout playback threshold cannot be negative, got %d", c.BreakoutPlaybackThreshold)
	}
	if c.VisionaryWeight < 0 || c.EarlyPlayPoints < 0 {
		return fmt.Errorf("score contributions cannot be negative (visionary weight %f, early points %f)", c.VisionaryWeight, c.EarlyPlayPoints)
	}
	if err := validateTrendsetterTiers(c.TrendsetterTiers); err != nil {
		return fmt.Errorf("trendsetter tiers: %w", err)
	}
	if c.RepostWindow <= 0 {
		return fmt.Errorf("repost window must be positive, got %s", c.RepostWindow)
	}
	if c.TrendingRepostThreshold < 0 {
		return fmt.Errorf("trending repost threshold cannot be negative, got %d", c.TrendingRepostThreshold)
	}
	if err := validateRepostTiers(c.RepostTiers); err != nil {
		return fmt.Errorf("repost tiers: %w", err)
	}
	if c.TrackWeight < 0 || c.ArtistWeight < 0 || c.GenreWeight < 0 {
		return fmt.Errorf("similarity weights cannot be negative")
	}
	total := c.TrackWeight + c.ArtistWeight + c.GenreWeight
	if total <= 0 {
		return fmt.Errorf("similarity weights must sum to a positive value, got %f", total)
	}
	if c.MinSharedTracks < 1 && c.MinSharedArtists < 1 {
		return fmt.Errorf("minimum-overlap floor must require at least one shared item")
	}
	return nil
}
