package catalog

import (
	"sort"
	"sync"

	"github.com/waveformlabs/track-recommender/internal/domain"
)

// Store holds the in-memory catalog snapshot. The engine only reads
// it; Reload swaps the whole snapshot so readers see either the old
// or the new catalog, never a mix.
type Store struct {
	mu      sync.RWMutex
	tracks  []domain.Track
	byID    map[int64]domain.Track
	artists []domain.Artist
}

func NewStore() *Store {
	return &Store{byID: make(map[int64]domain.Track)}
}

// Reload replaces the catalog. Tracks are kept sorted by id so
// iteration order is stable across calls.
func (s *Store) Reload(tracks []domain.Track, artists []domain.Artist) {
	sorted := make([]domain.Track, len(tracks))
	copy(sorted, tracks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int64]domain.Track, len(sorted))
	for _, t := range sorted {
		byID[t.ID] = t
	}

	sortedArtists := make([]domain.Artist, len(artists))
	copy(sortedArtists, artists)
	sort.Slice(sortedArtists, func(i, j int) bool { return sortedArtists[i].ID < sortedArtists[j].ID })

	s.mu.Lock()
	s.tracks = sorted
	s.byID = byID
	s.artists = sortedArtists
	s.mu.Unlock()
}

// Tracks returns the current snapshot slice. Callers must not modify it.
func (s *Store) Tracks() []domain.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracks
}

func (s *Store) Track(id int64) (domain.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	return t, ok
}

func (s *Store) Artists() []domain.Artist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artists
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}
