// Package adapter implements the upstream music platform API client.
// The adapter is a thin fetch layer: it authenticates, rate-limits and
// retries, and maps wire payloads onto domain snapshots. All analytics
// happen elsewhere.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"sound-rewind/internal/domain"
)

// SoundwaveAdapter implements domain.PlatformAdapter against the Soundwave
// HTTP API (a SoundCloud-compatible surface).
type SoundwaveAdapter struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Options configures a SoundwaveAdapter.
type Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	RateLimit    float64 // requests per second
	RateBurst    int
}

// NewSoundwaveAdapter creates an adapter using OAuth client credentials.
// The oauth2 transport refreshes tokens transparently; the rate limiter
// bounds our request rate against the upstream quota.
func NewSoundwaveAdapter(opts Options) *SoundwaveAdapter {
	creds := clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
	}

	httpClient := creds.Client(context.Background())
	httpClient.Timeout = 15 * time.Second

	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 10
	}

	return &SoundwaveAdapter{
		baseURL:    opts.BaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
	}
}

// wire shapes

type wireTrack struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	User  struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		FollowersCount *int   `json:"followers_count"`
	} `json:"user"`
	Duration      int64  `json:"duration"` // milliseconds
	Genre         string `json:"genre"`
	GenreFamily   string `json:"genre_family"`
	TagList       string `json:"tag_list"`
	PlaybackCount int64  `json:"playback_count"`
	LikesCount    int64  `json:"likes_count"`
	RepostsCount  int64  `json:"reposts_count"`
	CreatedAt     string `json:"created_at"`
}

type wireActivity struct {
	ID         string `json:"id"`
	TrackID    string `json:"track_id"`
	Type       string `json:"type"` // play, like, repost, share
	PlayedMS   int64  `json:"played_ms"`
	OccurredAt string `json:"occurred_at"`
}

type wireFollowing struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	AvatarURL       string   `json:"avatar_url"`
	FavoriteTracks  []string `json:"favorite_tracks"`
	FavoriteArtists []string `json:"favorite_artists"`
	FavoriteGenres  []string `json:"favorite_genres"`
}

// GetAccountTracks fetches the uploaded/liked track corpus for an account
func (a *SoundwaveAdapter) GetAccountTracks(ctx context.Context, handle string) ([]*domain.Track, error) {
	var wire []wireTrack
	if err := a.getJSON(ctx, fmt.Sprintf("/users/%s/tracks", url.PathEscape(handle)), &wire); err != nil {
		return nil, err
	}

	tracks := make([]*domain.Track, 0, len(wire))
	for _, w := range wire {
		track := &domain.Track{
			ID:    w.ID,
			Title: w.Title,
			Artist: domain.Artist{
				ID:   w.User.ID,
				Name: w.User.Username,
			},
			Duration:      time.Duration(w.Duration) * time.Millisecond,
			Genre:         w.Genre,
			GenreFamily:   w.GenreFamily,
			Tags:          w.TagList,
			PlaybackCount: w.PlaybackCount,
			LikeCount:     w.LikesCount,
			RepostCount:   w.RepostsCount,
		}
		if w.User.FollowersCount != nil {
			track.Artist.FollowerCount = *w.User.FollowersCount
			track.Artist.FollowerCountKnown = true
		}
		if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
			track.ReleasedAt = t
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// GetAccountActivity fetches the activity log for an account. Events with
// an unknown type are dropped rather than failing the whole fetch.
func (a *SoundwaveAdapter) GetAccountActivity(ctx context.Context, handle string) ([]*domain.ActivityEvent, error) {
	var wire []wireActivity
	if err := a.getJSON(ctx, fmt.Sprintf("/users/%s/activities", url.PathEscape(handle)), &wire); err != nil {
		return nil, err
	}

	events := make([]*domain.ActivityEvent, 0, len(wire))
	for _, w := range wire {
		kind := domain.EventKind(w.Type)
		if !kind.Valid() {
			continue
		}
		occurredAt, err := time.Parse(time.RFC3339, w.OccurredAt)
		if err != nil {
			continue
		}
		event := &domain.ActivityEvent{
			ID:         w.ID,
			TrackID:    w.TrackID,
			Kind:       kind,
			OccurredAt: occurredAt,
		}
		if kind == domain.EventPlay {
			event.PlayDuration = time.Duration(w.PlayedMS) * time.Millisecond
		}
		events = append(events, event)
	}
	return events, nil
}

// GetFollowedAccounts fetches followed accounts with their liked sets
func (a *SoundwaveAdapter) GetFollowedAccounts(ctx context.Context, handle string) ([]*domain.FollowedAccount, error) {
	var wire []wireFollowing
	if err := a.getJSON(ctx, fmt.Sprintf("/users/%s/followings", url.PathEscape(handle)), &wire); err != nil {
		return nil, err
	}

	followed := make([]*domain.FollowedAccount, 0, len(wire))
	for _, w := range wire {
		followed = append(followed, &domain.FollowedAccount{
			ID:           w.ID,
			Name:         w.Username,
			AvatarURL:    w.AvatarURL,
			LikedTracks:  w.FavoriteTracks,
			LikedArtists: w.FavoriteArtists,
			LikedGenres:  w.FavoriteGenres,
		})
	}
	return followed, nil
}

// getJSON performs a rate-limited GET with bounded retries and decodes the
// response into out. Client errors (4xx) do not retry; they indicate a bad
// request or a missing account, not a transient upstream condition.
func (a *SoundwaveAdapter) getJSON(ctx context.Context, path string, out interface{}) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")

			resp, err := a.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("failed to execute request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				return retry.Unrecoverable(domain.ErrNotFound)
			}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				body, _ := io.ReadAll(resp.Body)
				return retry.Unrecoverable(fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body)))
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to decode response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}
