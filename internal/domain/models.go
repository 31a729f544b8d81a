package domain

import "time"

// Artist identifies the owner of a track as reported by the upstream platform.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// FollowerCount is only meaningful when FollowerCountKnown is true.
	// Upstream omits the counter for some accounts.
	FollowerCount      int  `json:"followerCount"`
	FollowerCountKnown bool `json:"followerCountKnown"`
}

// Track is an immutable snapshot of an uploaded or liked track.
// Playback, like and repost counters are live upstream values captured
// at fetch time; the engine never mutates a track.
type Track struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Artist        Artist        `json:"artist"`
	Duration      time.Duration `json:"duration"`
	Genre         string        `json:"genre"`       // raw genre label
	GenreFamily   string        `json:"genreFamily"` // raw genre-family label
	Tags          string        `json:"tags"`        // raw comma/semicolon-delimited tag list
	PlaybackCount int64         `json:"playbackCount"`
	LikeCount     int64         `json:"likeCount"`
	RepostCount   int64         `json:"repostCount"`
	ReleasedAt    time.Time     `json:"releasedAt"`
}

// EventKind enumerates the activity event types. Closed set.
type EventKind string

const (
	EventPlay   EventKind = "play"
	EventLike   EventKind = "like"
	EventRepost EventKind = "repost"
	EventShare  EventKind = "share"
)

// Valid reports whether k is one of the four known event kinds.
func (k EventKind) Valid() bool {
	switch k {
	case EventPlay, EventLike, EventRepost, EventShare:
		return true
	}
	return false
}

// ActivityEvent is one entry of an account's append-only activity log.
// PlayDuration is zero for every kind except EventPlay.
type ActivityEvent struct {
	ID           string        `json:"id"`
	AccountID    string        `json:"accountId"`
	TrackID      string        `json:"trackId"`
	Kind         EventKind     `json:"kind"`
	PlayDuration time.Duration `json:"playDuration,omitempty"`
	OccurredAt   time.Time     `json:"occurredAt"`
}

// FollowedAccount is a snapshot of an account the user follows, reduced to
// the liked sets used for similarity comparison. Never mutated.
type FollowedAccount struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatarUrl"`
	LikedTracks  []string `json:"likedTracks"`  // track ids
	LikedArtists []string `json:"likedArtists"` // artist display names
	LikedGenres  []string `json:"likedGenres"`  // raw genre labels
}

// Account is a registered listener whose wrapped summary can be computed.
type Account struct {
	ID        string
	Handle    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GenreStat holds the derived aggregate for one canonical genre key.
type GenreStat struct {
	Key           string        `json:"key"`
	TrackCount    int           `json:"trackCount"`
	ListeningTime time.Duration `json:"listeningTime"`
	Share         float64       `json:"share"` // percent of total track count
}

// GenreReport is the output of genre aggregation over one corpus.
// Distribution holds every genre's stat ordered by track count, so shares
// always describe the whole corpus; the top lists are truncated views.
type GenreReport struct {
	DiscoveryCount int         `json:"discoveryCount"`
	Distribution   []GenreStat `json:"distribution"`
	TopByCount     []GenreStat `json:"topByCount"`
	TopByTime      []GenreStat `json:"topByTime"`
}

// Persona labels for the listening-pattern classification.
const (
	PersonaEarlyBird         = "Early Bird"
	PersonaAfternoonListener = "Afternoon Listener"
	PersonaEveningVibes      = "Evening Vibes"
	PersonaNightOwl          = "Night Owl"
)

// ListeningPattern is the hour/day bucketing of play activity.
// When HasData is false no peak or persona values are populated.
type ListeningPattern struct {
	HasData    bool              `json:"hasData"`
	PeakHour   int               `json:"peakHour"`
	PeakDay    time.Weekday      `json:"peakDay"`
	Persona    string            `json:"persona"`
	HourCounts [24]int           `json:"hourCounts"`
	DayCounts  [7]int            `json:"dayCounts"`
	HourTime   [24]time.Duration `json:"hourTime"`
	DayTime    [7]time.Duration  `json:"dayTime"`
}

// UndergroundResult is the followers-weighted listening share of
// underground artists.
type UndergroundResult struct {
	Percent          float64 `json:"percent"` // 0..100, one decimal
	TracksConsidered int     `json:"tracksConsidered"`
}

// Badge is an ordered classification label produced by a scorer ladder.
type Badge string

// Trendsetter badge tiers, lowest to highest.
const (
	BadgeListener     Badge = "Listener"
	BadgeExplorer     Badge = "Explorer"
	BadgeEarlyAdopter Badge = "Early Adopter"
	BadgeTrendsetter  Badge = "Trendsetter"
	BadgeVisionary    Badge = "Visionary"
)

// Repost badge tiers, lowest to highest. The lowest tier is shared
// with the trendsetter ladder.
const (
	BadgeCurator    Badge = "Curator"
	BadgeTastemaker Badge = "Tastemaker"
	BadgeAmplifier  Badge = "Amplifier"
	BadgeHitmaker   Badge = "Hitmaker"
)

// TrendsetterResult is the early-adoption scoring output.
type TrendsetterResult struct {
	Score              float64 `json:"score"`
	Badge              Badge   `json:"badge"`
	VisionaryTracks    int     `json:"visionaryTracks"`
	EarlyAdopterTracks int     `json:"earlyAdopterTracks"`
	Description        string  `json:"description"`
}

// RepostResult is the repost-amplification scoring output.
type RepostResult struct {
	RepostedTracks int     `json:"repostedTracks"`
	TrendingTracks int     `json:"trendingTracks"`
	SuccessRate    float64 `json:"successRate"` // percent, 0..100
	Badge          Badge   `json:"badge"`
	Description    string  `json:"description"`
}

// NoMatchReason explains an absent doppelganger result.
type NoMatchReason string

const (
	NoMatchNoFollowedAccounts  NoMatchReason = "no_followed_accounts"
	NoMatchNoQualifyingOverlap NoMatchReason = "no_qualifying_overlap"
)

// DoppelgangerResult is either a best taste match among followed accounts
// or an explicit no-match outcome with a reason code.
type DoppelgangerResult struct {
	Matched       bool          `json:"matched"`
	AccountID     string        `json:"accountId,omitempty"`
	Name          string        `json:"name,omitempty"`
	AvatarURL     string        `json:"avatarUrl,omitempty"`
	Similarity    float64       `json:"similarity"` // 0..1
	SharedTracks  int           `json:"sharedTracks"`
	SharedArtists int           `json:"sharedArtists"`
	SharedGenres  int           `json:"sharedGenres"`
	Reason        NoMatchReason `json:"reason,omitempty"`
}

// WrappedSummary composes every sub-result for one account. Nil fields mean
// the sub-computation had no qualifying input and was omitted; partial
// summaries are the normal outcome, not an error state.
type WrappedSummary struct {
	AccountID    string              `json:"accountId"`
	GeneratedAt  time.Time           `json:"generatedAt"`
	TrackCount   int                 `json:"trackCount"`
	EventCount   int                 `json:"eventCount"`
	Genres       *GenreReport        `json:"genres,omitempty"`
	Listening    *ListeningPattern   `json:"listening,omitempty"`
	Underground  *UndergroundResult  `json:"underground,omitempty"`
	Trendsetter  *TrendsetterResult  `json:"trendsetter,omitempty"`
	Reposts      *RepostResult       `json:"reposts,omitempty"`
	Doppelganger *DoppelgangerResult `json:"doppelganger,omitempty"`
}
