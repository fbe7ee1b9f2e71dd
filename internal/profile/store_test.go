package profile

import (
	"testing"
	"time"

	"github.com/waveformlabs/track-recommender/internal/domain"
)

func testTrack(id int64, genre, artist string) domain.Track {
	return domain.Track{ID: id, Title: "Track", Artist: artist, Genre: genre, PlayCount: 100, CreatedAt: time.Unix(1700000000, 0)}
}

func TestUpdateCreatesProfileLazily(t *testing.T) {
	s := NewStore(0.3)

	if _, ok := s.Get(1); ok {
		t.Fatal("profile should not exist before first event")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d profiles", s.Len())
	}

	s.Update(1, testTrack(10, "Rock", "A"), domain.ActionPlay)

	p, ok := s.Get(1)
	if !ok {
		t.Fatal("profile should exist after first event")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 profile, got %d", s.Len())
	}
	if p.PlayCounts[10] != 1 {
		t.Errorf("expected play count 1, got %d", p.PlayCounts[10])
	}
	if len(p.RecentTracks) != 1 || p.RecentTracks[0] != 10 {
		t.Errorf("expected recent tracks [10], got %v", p.RecentTracks)
	}
	if p.LastActive.IsZero() {
		t.Error("last active not set")
	}
}

func TestUpdateRecentTracksOrderAndCap(t *testing.T) {
	s := NewStore(0.3)

	for i := int64(1); i <= 105; i++ {
		s.Update(1, testTrack(i, "Rock", "A"), domain.ActionPlay)
	}

	p, _ := s.Get(1)
	if len(p.RecentTracks) != 100 {
		t.Fatalf("expected 100 recent tracks, got %d", len(p.RecentTracks))
	}
	// Most recent first, oldest evicted
	if p.RecentTracks[0] != 105 {
		t.Errorf("expected newest track 105 first, got %d", p.RecentTracks[0])
	}
	if p.RecentTracks[99] != 6 {
		t.Errorf("expected oldest surviving track 6 last, got %d", p.RecentTracks[99])
	}

	// Replaying an already-recent track must not duplicate it
	s.Update(1, testTrack(105, "Rock", "A"), domain.ActionPlay)
	p, _ = s.Get(1)
	if len(p.RecentTracks) != 100 {
		t.Errorf("replay duplicated recent entry: %d tracks", len(p.RecentTracks))
	}
	if p.PlayCounts[105] != 2 {
		t.Errorf("expected play count 2 for replay, got %d", p.PlayCounts[105])
	}
}

func TestUpdateSkipAndLike(t *testing.T) {
	s := NewStore(0.3)
	track := testTrack(7, "Jazz", "Blue Note Trio")

	s.Update(1, track, domain.ActionSkip)
	s.Update(1, track, domain.ActionLike)
	s.Update(1, track, domain.ActionLike) // like twice: sets stay deduplicated

	p, _ := s.Get(1)
	if p.SkipCounts[7] != 1 {
		t.Errorf("expected skip count 1, got %d", p.SkipCounts[7])
	}
	if len(p.FavoriteGenres) != 1 {
		t.Errorf("expected 1 favorite genre, got %d", len(p.FavoriteGenres))
	}
	if len(p.FavoriteArtists) != 1 {
		t.Errorf("expected 1 favorite artist, got %d", len(p.FavoriteArtists))
	}
	if _, ok := p.FavoriteGenres["Jazz"]; !ok {
		t.Error("Jazz missing from favorite genres")
	}
	if _, ok := p.FavoriteArtists["Blue Note Trio"]; !ok {
		t.Error("artist missing from favorites")
	}
}

func TestUserSimilarityNoSignal(t *testing.T) {
	a := domain.NewUserProfile(1)
	b := domain.NewUserProfile(2)

	if got := UserSimilarity(a, b); got != 0 {
		t.Errorf("expected 0 for empty profiles, got %f", got)
	}
}

func TestUserSimilarityAveragesOverApplicableFactors(t *testing.T) {
	// Only the genre factor has data: the result is the weighted genre
	// jaccard divided by one factor, not by three.
	a := domain.NewUserProfile(1)
	b := domain.NewUserProfile(2)
	a.FavoriteGenres["Rock"] = struct{}{}
	b.FavoriteGenres["Rock"] = struct{}{}

	got := UserSimilarity(a, b)
	want := 0.4 // 0.4 * 1.0 jaccard / 1 factor
	if got != want {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestUserSimilarityAllFactors(t *testing.T) {
	a := domain.NewUserProfile(1)
	b := domain.NewUserProfile(2)
	a.FavoriteGenres["Rock"] = struct{}{}
	b.FavoriteGenres["Rock"] = struct{}{}
	a.FavoriteArtists["X"] = struct{}{}
	b.FavoriteArtists["Y"] = struct{}{}
	a.RecentTracks = []int64{1, 2}
	b.RecentTracks = []int64{2, 3}

	got := UserSimilarity(a, b)
	// genre 0.4*1 + artist 0.3*0 + history 0.3*(1/3), over 3 factors
	want := (0.4 + 0.0 + 0.3/3.0) / 3.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestFindSimilarUsers(t *testing.T) {
	s := NewStore(0.3)
	rock := testTrack(1, "Rock", "A")
	jazz := testTrack(2, "Jazz", "B")

	s.Update(1, rock, domain.ActionLike)
	s.Update(2, rock, domain.ActionLike) // strong match with user 1
	s.Update(3, jazz, domain.ActionLike) // no overlap with user 1

	p, _ := s.Get(1)
	similar := s.FindSimilarUsers(p)

	if len(similar) != 1 {
		t.Fatalf("expected 1 similar user, got %d", len(similar))
	}
	if similar[0].Profile.UserID != 2 {
		t.Errorf("expected user 2, got %d", similar[0].Profile.UserID)
	}
	if similar[0].Similarity <= 0.3 {
		t.Errorf("similarity should be above threshold, got %f", similar[0].Similarity)
	}
}

func TestGetReturnsClone(t *testing.T) {
	s := NewStore(0.3)
	s.Update(1, testTrack(1, "Rock", "A"), domain.ActionPlay)

	p, _ := s.Get(1)
	p.PlayCounts[1] = 999
	p.RecentTracks[0] = 42

	fresh, _ := s.Get(1)
	if fresh.PlayCounts[1] != 1 {
		t.Error("mutating a returned profile leaked into the store")
	}
	if fresh.RecentTracks[0] != 1 {
		t.Error("mutating returned recent tracks leaked into the store")
	}
}
