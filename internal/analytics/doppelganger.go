package analytics

import (
	"math"
	"strings"

	"sound-rewind/internal/domain"
	"sound-rewind/internal/genre"
)

// DoppelgangerMatcher finds the followed account with the most similar taste.
type DoppelgangerMatcher struct {
	cfg Config
}

// NewDoppelgangerMatcher creates a matcher using the config's blend weights
// and minimum-overlap floor.
func NewDoppelgangerMatcher(cfg Config) *DoppelgangerMatcher {
	return &DoppelgangerMatcher{cfg: cfg}
}

// tasteProfile is the subject account's comparison sets, derived once from
// its track corpus.
type tasteProfile struct {
	tracks  map[string]struct{}
	artists map[string]struct{}
	genres  map[string]struct{}
}

func buildTasteProfile(tracks []*domain.Track) tasteProfile {
	p := tasteProfile{
		tracks:  make(map[string]struct{}, len(tracks)),
		artists: make(map[string]struct{}),
		genres:  make(map[string]struct{}),
	}
	for _, track := range tracks {
		p.tracks[track.ID] = struct{}{}
		if name := strings.ToLower(strings.TrimSpace(track.Artist.Name)); name != "" {
			p.artists[name] = struct{}{}
		}
		for _, key := range genre.NormalizeAll(track.Genre, track.GenreFamily, track.Tags) {
			p.genres[key] = struct{}{}
		}
	}
	return p
}

// Match scores every followed account against the subject's corpus and
// returns the best qualifying candidate. Similarity blends per-set overlap
// coefficients, tracks weighted heaviest. Candidates below the floor (at
// least MinSharedTracks shared tracks or MinSharedArtists shared artists)
// are never reported; absence is a normal outcome carrying a reason code,
// not an error. Ties resolve by shared-track count, then account id.
func (m *DoppelgangerMatcher) Match(tracks []*domain.Track, followed []*domain.FollowedAccount) *domain.DoppelgangerResult {
	if len(followed) == 0 {
		return &domain.DoppelgangerResult{Reason: domain.NoMatchNoFollowedAccounts}
	}

	profile := buildTasteProfile(tracks)

	var best *domain.DoppelgangerResult
	for _, account := range followed {
		candidate := m.score(profile, account)
		if candidate == nil {
			continue
		}
		if best == nil || better(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return &domain.DoppelgangerResult{Reason: domain.NoMatchNoQualifyingOverlap}
	}
	return best
}

// score computes the weighted similarity for one candidate, or nil when the
// candidate falls below the minimum-overlap floor.
func (m *DoppelgangerMatcher) score(profile tasteProfile, account *domain.FollowedAccount) *domain.DoppelgangerResult {
	theirTracks := stringSet(account.LikedTracks, func(s string) string { return s })
	theirArtists := stringSet(account.LikedArtists, func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
	theirGenres := stringSet(account.LikedGenres, genre.Normalize)

	sharedTracks := intersection(profile.tracks, theirTracks)
	sharedArtists := intersection(profile.artists, theirArtists)
	sharedGenres := intersection(profile.genres, theirGenres)

	if sharedTracks < m.cfg.MinSharedTracks && sharedArtists < m.cfg.MinSharedArtists {
		return nil
	}

	similarity := m.cfg.TrackWeight*overlapCoefficient(sharedTracks, len(profile.tracks), len(theirTracks)) +
		m.cfg.ArtistWeight*overlapCoefficient(sharedArtists, len(profile.artists), len(theirArtists)) +
		m.cfg.GenreWeight*overlapCoefficient(sharedGenres, len(profile.genres), len(theirGenres))
	similarity /= m.cfg.TrackWeight + m.cfg.ArtistWeight + m.cfg.GenreWeight
	similarity = math.Round(similarity*1000) / 1000

	return &domain.DoppelgangerResult{
		Matched:       true,
		AccountID:     account.ID,
		Name:          account.Name,
		AvatarURL:     account.AvatarURL,
		Similarity:    similarity,
		SharedTracks:  sharedTracks,
		SharedArtists: sharedArtists,
		SharedGenres:  sharedGenres,
	}
}

// better orders candidates by similarity, then raw shared-track count, then
// account id, which keeps selection fully deterministic.
func better(a, b *domain.DoppelgangerResult) bool {
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}
	if a.SharedTracks != b.SharedTracks {
		return a.SharedTracks > b.SharedTracks
	}
	return a.AccountID < b.AccountID
}

// overlapCoefficient is |shared| / min(|a|, |b|), 0 when either set is empty.
// The min denominator keeps small accounts comparable against large ones.
func overlapCoefficient(shared, a, b int) float64 {
	smaller := a
	if b < smaller {
		smaller = b
	}
	if smaller == 0 {
		return 0
	}
	v := float64(shared) / float64(smaller)
	if v > 1 {
		v = 1
	}
	return v
}

func stringSet(values []string, normalize func(string) string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := normalize(v)
		if key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func intersection(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for k := range a {
		if _, ok := b[k]; ok {
			count++
		}
	}
	return count
}
