package catalog

import (
	"testing"
	"time"

	"github.com/waveformlabs/track-recommender/internal/domain"
)

func TestReloadAndLookup(t *testing.T) {
	s := NewStore()

	if s.Len() != 0 {
		t.Fatalf("new store should be empty, got %d tracks", s.Len())
	}
	if _, ok := s.Track(1); ok {
		t.Fatal("empty store returned a track")
	}

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Reload([]domain.Track{
		{ID: 3, Title: "C", Genre: "Rock", CreatedAt: created},
		{ID: 1, Title: "A", Genre: "Jazz", CreatedAt: created},
		{ID: 2, Title: "B", Genre: "Pop", CreatedAt: created},
	}, []domain.Artist{
		{ID: 2, Name: "Second"},
		{ID: 1, Name: "First"},
	})

	if s.Len() != 3 {
		t.Errorf("expected 3 tracks, got %d", s.Len())
	}

	// Snapshot iteration order is ascending id
	tracks := s.Tracks()
	for i, want := range []int64{1, 2, 3} {
		if tracks[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, tracks[i].ID)
		}
	}

	track, ok := s.Track(2)
	if !ok || track.Title != "B" {
		t.Errorf("lookup failed: %v %v", track, ok)
	}

	artists := s.Artists()
	if len(artists) != 2 || artists[0].Name != "First" {
		t.Errorf("unexpected artists: %v", artists)
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	s := NewStore()
	s.Reload([]domain.Track{{ID: 1, Title: "Old"}}, nil)

	old := s.Tracks()
	s.Reload([]domain.Track{{ID: 2, Title: "New"}}, nil)

	// A reader holding the previous snapshot keeps a consistent view.
	if len(old) != 1 || old[0].ID != 1 {
		t.Errorf("old snapshot mutated: %v", old)
	}
	if _, ok := s.Track(1); ok {
		t.Error("track from previous snapshot still resolvable")
	}
	if _, ok := s.Track(2); !ok {
		t.Error("new track missing after reload")
	}
}
