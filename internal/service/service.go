package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/waveformlabs/track-recommender/internal/cache"
	"github.com/waveformlabs/track-recommender/internal/catalog"
	"github.com/waveformlabs/track-recommender/internal/domain"
	"github.com/waveformlabs/track-recommender/internal/engine"
	"github.com/waveformlabs/track-recommender/internal/profile"
	"github.com/waveformlabs/track-recommender/internal/repository"
	"github.com/waveformlabs/track-recommender/internal/similarity"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type Service struct {
	repo     *repository.Repository
	cache    *cache.Cache
	catalog  *catalog.Store
	sim      *similarity.Engine
	profiles *profile.Store
	engine   *engine.Engine

	reloadMu sync.Mutex
}

func NewService(repo *repository.Repository, cache *cache.Cache, cat *catalog.Store, sim *similarity.Engine, profiles *profile.Store, eng *engine.Engine) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		catalog:  cat,
		sim:      sim,
		profiles: profiles,
		engine:   eng,
	}
}

// RecommendParams are the per-request knobs a caller can pass.
// CurrentTrackID of 0 means no seed track; empty enum values mean that
// contextual dimension is absent.
type RecommendParams struct {
	Limit          int
	CurrentTrackID int64
	TimeOfDay      domain.TimeOfDay
	Mood           domain.Mood
	Activity       domain.Activity
}

// contextual requests vary per call, so only the plain profile-driven
// request shape goes through the cache.
func (p RecommendParams) cacheable() bool {
	return p.CurrentTrackID == 0 && p.TimeOfDay == "" && p.Mood == "" && p.Activity == ""
}

func (s *Service) Recommend(ctx context.Context, userID int64, params RecommendParams) (*domain.RecommendationResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}
	params.Limit = limit

	if params.cacheable() {
		cached, err := s.cache.Get(ctx, userID, limit)
		if err != nil {
			log.Printf("[service] cache get error for user %d: %v", userID, err)
		}
		if cached != nil {
			return &domain.RecommendationResult{
				Recommendations: cached,
				CacheHit:        true,
			}, nil
		}
	}

	rc, err := s.buildContext(userID, params)
	if err != nil {
		return nil, err
	}

	recs := s.engine.GetRecommendations(rc)

	if params.cacheable() {
		if cacheErr := s.cache.Set(ctx, userID, limit, recs); cacheErr != nil {
			log.Printf("[service] cache set error for user %d: %v", userID, cacheErr)
		}
	}

	return &domain.RecommendationResult{
		Recommendations: recs,
		CacheHit:        false,
	}, nil
}

func (s *Service) buildContext(userID int64, params RecommendParams) (domain.RecommendationContext, error) {
	rc := domain.RecommendationContext{
		TimeOfDay: params.TimeOfDay,
		Mood:      params.Mood,
		Activity:  params.Activity,
		Limit:     params.Limit,
	}

	// An unknown user is not an error: the collaborative strategy just
	// has nothing to work with.
	if p, ok := s.profiles.Get(userID); ok {
		rc.Profile = p
		rc.RecentTracks = p.RecentTracks
	}

	if params.CurrentTrackID != 0 {
		track, ok := s.catalog.Track(params.CurrentTrackID)
		if !ok {
			return rc, fmt.Errorf("current track %d: %w", params.CurrentTrackID, domain.ErrTrackNotFound)
		}
		rc.CurrentTrack = &track
	}

	return rc, nil
}

// RecordEvent applies one playback event and drops the user's cached
// recommendations so the next request reflects it.
func (s *Service) RecordEvent(ctx context.Context, userID, trackID int64, action domain.PlaybackAction) error {
	track, ok := s.catalog.Track(trackID)
	if !ok {
		return fmt.Errorf("event track %d: %w", trackID, domain.ErrTrackNotFound)
	}

	s.profiles.Update(userID, track, action)

	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		log.Printf("[service] cache invalidation error for user %d: %v", userID, err)
	}
	return nil
}

// Explain renders a justification for recommending trackID to userID.
func (s *Service) Explain(userID, trackID int64) (string, error) {
	track, ok := s.catalog.Track(trackID)
	if !ok {
		return "", fmt.Errorf("explain track %d: %w", trackID, domain.ErrTrackNotFound)
	}

	rc := domain.RecommendationContext{}
	if p, ok := s.profiles.Get(userID); ok {
		rc.Profile = p
	}
	return s.engine.GetRecommendationExplanation(track, rc), nil
}

// ReloadCatalog re-pulls the catalog from the database and rebuilds
// the similarity matrix. Readers keep the previous snapshot until both
// swaps land.
func (s *Service) ReloadCatalog(ctx context.Context) (int, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	tracks, err := s.repo.LoadTracks(ctx)
	if err != nil {
		return 0, fmt.Errorf("load tracks: %w", err)
	}
	artists, err := s.repo.LoadArtists(ctx)
	if err != nil {
		return 0, fmt.Errorf("load artists: %w", err)
	}

	s.catalog.Reload(tracks, artists)
	s.sim.Rebuild(s.catalog.Tracks())

	// Cached lists were ranked against the old catalog.
	if err := s.cache.ClearAll(ctx); err != nil {
		log.Printf("[service] cache flush error after reload: %v", err)
	}

	log.Printf("[service] catalog reloaded: %d tracks, %d artists", len(tracks), len(artists))
	return len(tracks), nil
}

// Ping reports backend connectivity for the health endpoint: both the
// database and the cache must answer.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := s.cache.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}
