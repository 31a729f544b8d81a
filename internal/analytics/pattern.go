package analytics

import (
	"time"

	"sound-rewind/internal/domain"
)

// ListeningPatternAnalyzer buckets play activity by hour of day and day of
// week and classifies a listening persona from the peak hour.
type ListeningPatternAnalyzer struct{}

// NewListeningPatternAnalyzer creates a ListeningPatternAnalyzer.
func NewListeningPatternAnalyzer() *ListeningPatternAnalyzer {
	return &ListeningPatternAnalyzer{}
}

// Analyze accumulates play counts and listening time into 24 hour buckets
// and 7 weekday buckets. Only PLAY events participate; likes, reposts and
// shares are excluded. Peak hour ties resolve to the earliest hour, peak day
// ties to the earliest weekday starting at Sunday (time.Weekday order).
// An empty event set yields HasData=false with no peak or persona values.
func (a *ListeningPatternAnalyzer) Analyze(events []*domain.ActivityEvent) *domain.ListeningPattern {
	pattern := &domain.ListeningPattern{}

	for _, ev := range events {
		if ev.Kind != domain.EventPlay {
			continue
		}
		hour := ev.OccurredAt.Hour()
		day := int(ev.OccurredAt.Weekday())
		pattern.HourCounts[hour]++
		pattern.DayCounts[day]++
		pattern.HourTime[hour] += ev.PlayDuration
		pattern.DayTime[day] += ev.PlayDuration
		pattern.HasData = true
	}

	if !pattern.HasData {
		return pattern
	}

	for hour, count := range pattern.HourCounts {
		if count > pattern.HourCounts[pattern.PeakHour] {
			pattern.PeakHour = hour
		}
	}
	for day, count := range pattern.DayCounts {
		if count > pattern.DayCounts[pattern.PeakDay] {
			pattern.PeakDay = time.Weekday(day)
		}
	}

	pattern.Persona = PersonaForHour(pattern.PeakHour)
	return pattern
}

// PersonaForHour maps an hour of day onto one of the four fixed persona
// labels. The four ranges are contiguous, non-overlapping and cover the
// full day, so classification is total.
func PersonaForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return domain.PersonaEarlyBird
	case hour >= 12 && hour < 18:
		return domain.PersonaAfternoonListener
	case hour >= 18 && hour < 24:
		return domain.PersonaEveningVibes
	default: // [0, 6)
		return domain.PersonaNightOwl
	}
}
