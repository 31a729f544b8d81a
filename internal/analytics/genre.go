package analytics

import (
	"math"
	"sort"
	"time"

	"sound-rewind/internal/domain"
	"sound-rewind/internal/genre"
)

// GenreAnalyzer aggregates a track corpus into per-genre statistics.
type GenreAnalyzer struct {
	topN int
}

// NewGenreAnalyzer creates a GenreAnalyzer capping top lists at topN entries.
func NewGenreAnalyzer(topN int) *GenreAnalyzer {
	return &GenreAnalyzer{topN: topN}
}

// Analyze normalizes every track's genre labels and accumulates track count
// and listening time per canonical key. A track counts once per genre it
// touches, but its full listening time credits every one of its genres.
// An empty corpus yields a zero-value report rather than an error.
func (a *GenreAnalyzer) Analyze(tracks []*domain.Track, times map[string]time.Duration) *domain.GenreReport {
	counts := make(map[string]int)
	listening := make(map[string]time.Duration)

	contributions := 0
	for _, track := range tracks {
		keys := genre.NormalizeAll(track.Genre, track.GenreFamily, track.Tags)
		if len(keys) == 0 {
			continue
		}
		for _, key := range keys {
			counts[key]++
			listening[key] += times[track.ID]
			contributions++
		}
	}

	report := &domain.GenreReport{DiscoveryCount: len(counts)}
	if len(counts) == 0 {
		return report
	}

	// Shares are normalized over total genre contributions, not raw track
	// count: a track touching several genres would otherwise push the
	// distribution past 100%.
	stats := make([]domain.GenreStat, 0, len(counts))
	for key, count := range counts {
		share := float64(count) / float64(contributions) * 100
		stats = append(stats, domain.GenreStat{
			Key:           key,
			TrackCount:    count,
			ListeningTime: listening[key],
			Share:         math.Round(share*10) / 10,
		})
	}

	byCount := make([]domain.GenreStat, len(stats))
	copy(byCount, stats)
	sort.Slice(byCount, func(i, j int) bool {
		if byCount[i].TrackCount != byCount[j].TrackCount {
			return byCount[i].TrackCount > byCount[j].TrackCount
		}
		return byCount[i].Key < byCount[j].Key
	})

	byTime := make([]domain.GenreStat, len(stats))
	copy(byTime, stats)
	sort.Slice(byTime, func(i, j int) bool {
		if byTime[i].ListeningTime != byTime[j].ListeningTime {
			return byTime[i].ListeningTime > byTime[j].ListeningTime
		}
		return byTime[i].Key < byTime[j].Key
	})

	report.Distribution = byCount
	report.TopByCount = truncateStats(byCount, a.topN)
	report.TopByTime = truncateStats(byTime, a.topN)
	return report
}

func truncateStats(stats []domain.GenreStat, n int) []domain.GenreStat {
	if len(stats) > n {
		return stats[:n]
	}
	return stats
}
