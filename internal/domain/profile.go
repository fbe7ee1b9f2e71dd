package domain

import "time"

type PlaybackAction string

const (
	ActionPlay PlaybackAction = "play"
	ActionSkip PlaybackAction = "skip"
	ActionLike PlaybackAction = "like"
)

// UserProfile is the per-listener state learned from playback events.
// RecentTracks is most-recent-first and capped by the profile store.
type UserProfile struct {
	UserID          int64               `json:"user_id"`
	RecentTracks    []int64             `json:"recent_tracks"`
	PlayCounts      map[int64]int       `json:"play_counts"`
	SkipCounts      map[int64]int       `json:"skip_counts"`
	FavoriteGenres  map[string]struct{} `json:"favorite_genres"`
	FavoriteArtists map[string]struct{} `json:"favorite_artists"`
	LastActive      time.Time           `json:"last_active"`
}

func NewUserProfile(userID int64) *UserProfile {
	return &UserProfile{
		UserID:          userID,
		PlayCounts:      make(map[int64]int),
		SkipCounts:      make(map[int64]int),
		FavoriteGenres:  make(map[string]struct{}),
		FavoriteArtists: make(map[string]struct{}),
	}
}

// Clone returns a copy safe to read outside the profile store's lock.
func (p *UserProfile) Clone() *UserProfile {
	c := NewUserProfile(p.UserID)
	c.RecentTracks = append(c.RecentTracks, p.RecentTracks...)
	for id, n := range p.PlayCounts {
		c.PlayCounts[id] = n
	}
	for id, n := range p.SkipCounts {
		c.SkipCounts[id] = n
	}
	for g := range p.FavoriteGenres {
		c.FavoriteGenres[g] = struct{}{}
	}
	for a := range p.FavoriteArtists {
		c.FavoriteArtists[a] = struct{}{}
	}
	c.LastActive = p.LastActive
	return c
}

// HasHeard reports whether the track appears anywhere in the profile's
// listening history (recent sequence or play counts).
func (p *UserProfile) HasHeard(trackID int64) bool {
	if _, ok := p.PlayCounts[trackID]; ok {
		return true
	}
	for _, id := range p.RecentTracks {
		if id == trackID {
			return true
		}
	}
	return false
}
