package profile

import (
	"sort"
	"sync"
	"time"

	"github.com/waveformlabs/track-recommender/internal/domain"
)

const maxRecentTracks = 100

// UserSimilarity factor weights.
const (
	genreOverlapWeight   = 0.4
	artistOverlapWeight  = 0.3
	historyOverlapWeight = 0.3
)

// Store owns every user profile. Update is the only mutator; reads
// hand out clones so ranking never observes a profile mid-update.
type Store struct {
	mu       sync.RWMutex
	profiles map[int64]*domain.UserProfile

	similarityThreshold float64
	now                 func() time.Time
}

func NewStore(similarityThreshold float64) *Store {
	return &Store{
		profiles:            make(map[int64]*domain.UserProfile),
		similarityThreshold: similarityThreshold,
		now:                 time.Now,
	}
}

// Update applies one playback event to the user's profile, creating
// the profile on first contact.
func (s *Store) Update(userID int64, track domain.Track, action domain.PlaybackAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		p = domain.NewUserProfile(userID)
		s.profiles[userID] = p
	}

	if !containsID(p.RecentTracks, track.ID) {
		p.RecentTracks = append([]int64{track.ID}, p.RecentTracks...)
		if len(p.RecentTracks) > maxRecentTracks {
			p.RecentTracks = p.RecentTracks[:maxRecentTracks]
		}
	}

	switch action {
	case domain.ActionPlay:
		p.PlayCounts[track.ID]++
	case domain.ActionSkip:
		p.SkipCounts[track.ID]++
	case domain.ActionLike:
		p.FavoriteGenres[track.Genre] = struct{}{}
		p.FavoriteArtists[track.Artist] = struct{}{}
	}

	p.LastActive = s.now()
}

// Get returns a clone of the user's profile, or false if the user has
// never produced an event.
func (s *Store) Get(userID int64) (*domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// UserSimilarity compares two profiles in [0,1]. Each factor (genre,
// artist, listening-history overlap) counts only when at least one
// side has data for it; the result averages over the factors that
// applied, so a sparse profile is not penalized for missing signals.
func UserSimilarity(a, b *domain.UserProfile) float64 {
	total := 0.0
	factors := 0

	if j, ok := jaccardStrings(a.FavoriteGenres, b.FavoriteGenres); ok {
		total += genreOverlapWeight * j
		factors++
	}
	if j, ok := jaccardStrings(a.FavoriteArtists, b.FavoriteArtists); ok {
		total += artistOverlapWeight * j
		factors++
	}
	if j, ok := jaccardIDs(a.RecentTracks, b.RecentTracks); ok {
		total += historyOverlapWeight * j
		factors++
	}

	if factors == 0 {
		return 0
	}
	return total / float64(factors)
}

type SimilarUser struct {
	Profile    *domain.UserProfile
	Similarity float64
}

// FindSimilarUsers returns every other profile scoring above the
// store's threshold, descending by similarity with ascending user id
// breaking ties.
func (s *Store) FindSimilarUsers(p *domain.UserProfile) []SimilarUser {
	s.mu.RLock()
	var similar []SimilarUser
	for id, other := range s.profiles {
		if id == p.UserID {
			continue
		}
		sim := UserSimilarity(p, other)
		if sim > s.similarityThreshold {
			similar = append(similar, SimilarUser{Profile: other.Clone(), Similarity: sim})
		}
	}
	s.mu.RUnlock()

	sort.Slice(similar, func(i, j int) bool {
		if similar[i].Similarity != similar[j].Similarity {
			return similar[i].Similarity > similar[j].Similarity
		}
		return similar[i].Profile.UserID < similar[j].Profile.UserID
	})
	return similar
}

func jaccardStrings(a, b map[string]struct{}) (float64, bool) {
	union := len(a)
	intersection := 0
	for k := range b {
		if _, ok := a[k]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, false
	}
	return float64(intersection) / float64(union), true
}

func jaccardIDs(a, b []int64) (float64, bool) {
	setA := make(map[int64]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[int64]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}

	union := len(setA)
	intersection := 0
	for id := range setB {
		if _, ok := setA[id]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, false
	}
	return float64(intersection) / float64(union), true
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
