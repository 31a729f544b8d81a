package analytics

import (
	"fmt"
	"sync"
	"time"

	"sound-rewind/internal/domain"
)

// Snapshot is the immutable per-account input to the aggregator: the track
// corpus, the full activity log and the follow-graph snapshot, plus the
// reference time that trailing windows are measured against.
type Snapshot struct {
	AccountID string
	Tracks    []*domain.Track
	Events    []*domain.ActivityEvent
	Followed  []*domain.FollowedAccount
	Now       time.Time
}

// Aggregator composes every analyzer over one snapshot. It is the only
// component that knows about all the others; the analyzers themselves are
// independent and read only from the shared snapshot.
type Aggregator struct {
	cfg          Config
	genres       *GenreAnalyzer
	pattern      *ListeningPatternAnalyzer
	underground  *UndergroundSupportCalculator
	trendsetter  *TrendsetterScorer
	reposts      *RepostScorer
	doppelganger *DoppelgangerMatcher
}

// NewAggregator validates the configuration and builds the analyzer set.
// Config defects are the only hard failure the engine knows.
func NewAggregator(cfg Config) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analytics config: %w", err)
	}
	return &Aggregator{
		cfg:          cfg,
		genres:       NewGenreAnalyzer(cfg.TopGenres),
		pattern:      NewListeningPatternAnalyzer(),
		underground:  NewUndergroundSupportCalculator(cfg.UndergroundFollowerThreshold),
		trendsetter:  NewTrendsetterScorer(cfg),
		reposts:      NewRepostScorer(cfg),
		doppelganger: NewDoppelgangerMatcher(cfg),
	}, nil
}

// Summarize runs the analyzers over the snapshot and assembles the wrapped
// summary. Sub-computations are independent CPU-bound work, so they fan out
// onto goroutines and join at the end; each writes only its own field.
// A sub-result whose optional input is missing is omitted from the summary
// rather than failing the aggregation.
func (a *Aggregator) Summarize(snap Snapshot) *domain.WrappedSummary {
	summary := &domain.WrappedSummary{
		AccountID:   snap.AccountID,
		GeneratedAt: snap.Now,
		TrackCount:  len(snap.Tracks),
		EventCount:  len(snap.Events),
	}

	tracksByID := make(map[string]*domain.Track, len(snap.Tracks))
	for _, track := range snap.Tracks {
		tracksByID[track.ID] = track
	}
	times := ListeningTimes(snap.Tracks, snap.Events)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if len(snap.Tracks) > 0 {
			summary.Genres = a.genres.Analyze(snap.Tracks, times)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		pattern := a.pattern.Analyze(snap.Events)
		if pattern.HasData {
			summary.Listening = pattern
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if result, ok := a.underground.Calculate(snap.Tracks, times); ok {
			summary.Underground = &result
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		summary.Trendsetter = a.trendsetter.Score(snap.Events, tracksByID)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		summary.Reposts = a.reposts.Score(snap.Events, tracksByID, snap.Now)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		summary.Doppelganger = a.doppelganger.Match(snap.Tracks, snap.Followed)
	}()

	wg.Wait()
	return summary
}
