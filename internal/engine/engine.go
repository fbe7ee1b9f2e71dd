package engine

import (
	"log"
	"math"
	"sort"
	"strings"

	"github.com/waveformlabs/track-recommender/internal/catalog"
	"github.com/waveformlabs/track-recommender/internal/domain"
	"github.com/waveformlabs/track-recommender/internal/profile"
	"github.com/waveformlabs/track-recommender/internal/similarity"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Strategy weights. They must sum to 1.0 so a track recommended by
// every strategy at raw score 1.0 blends to at most 1.0.
const (
	collaborativeWeight = 0.4
	contentWeight       = 0.3
	contextualWeight    = 0.2
	trendingWeight      = 0.1
)

// candidate is one strategy's vote for a track, before weighting.
type candidate struct {
	track      domain.Track
	score      float64
	reason     string
	confidence float64
}

type Engine struct {
	catalog  *catalog.Store
	sim      *similarity.Engine
	profiles *profile.Store

	trendingMinPlays int64
}

func New(cat *catalog.Store, sim *similarity.Engine, profiles *profile.Store, trendingMinPlays int64) *Engine {
	return &Engine{
		catalog:          cat,
		sim:              sim,
		profiles:         profiles,
		trendingMinPlays: trendingMinPlays,
	}
}

// GetRecommendations runs all four strategies over the context,
// weights and merges their candidates, and returns the top ranked
// tracks. An empty result is a valid answer, not an error.
func (e *Engine) GetRecommendations(rc domain.RecommendationContext) []domain.Recommendation {
	limit := rc.Limit
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	strategies := []struct {
		name   string
		weight float64
		run    func(domain.RecommendationContext, int) []candidate
	}{
		{"collaborative", collaborativeWeight, e.collaborative},
		{"content", contentWeight, e.contentBased},
		{"contextual", contextualWeight, e.contextual},
		{"trending", trendingWeight, e.trending},
	}

	merged := make(map[int64]*domain.Recommendation)
	var order []int64

	for _, s := range strategies {
		for _, c := range runStrategy(s.name, s.run, rc, limit) {
			scaled := c.score * s.weight
			if rec, ok := merged[c.track.ID]; ok {
				rec.Score += scaled
				rec.Reason += "; " + c.reason
				rec.Confidence = math.Max(rec.Confidence, c.confidence)
			} else {
				merged[c.track.ID] = &domain.Recommendation{
					Track:      c.track,
					Score:      scaled,
					Reason:     c.reason,
					Confidence: c.confidence,
				}
				order = append(order, c.track.ID)
			}
		}
	}

	ranked := make([]domain.Recommendation, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *merged[id])
	}

	// Equal scores break ties on ascending track id so repeated calls
	// return identical orderings.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Track.ID < ranked[j].Track.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// runStrategy isolates strategy failures: one panicking strategy
// contributes nothing instead of taking the whole request down.
func runStrategy(name string, run func(domain.RecommendationContext, int) []candidate, rc domain.RecommendationContext, limit int) (out []candidate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] %s strategy failed: %v", name, r)
			out = nil
		}
	}()
	return run(rc, limit)
}

// GetRecommendationExplanation renders a short justification for
// recommending a track to this listener. Best-effort: it reads the
// same signals the strategies use but is not tied to the scoring path.
func (e *Engine) GetRecommendationExplanation(track domain.Track, rc domain.RecommendationContext) string {
	var reasons []string

	if rc.Profile != nil {
		if _, ok := rc.Profile.FavoriteGenres[track.Genre]; ok {
			reasons = append(reasons, "you like "+track.Genre+" music")
		}
		if _, ok := rc.Profile.FavoriteArtists[track.Artist]; ok {
			reasons = append(reasons, "you like "+track.Artist)
		}
	}
	if rc.CurrentTrack != nil && rc.CurrentTrack.ID != track.ID {
		if row := e.sim.Row(rc.CurrentTrack.ID); row[track.ID] > contentSimilarityThreshold {
			reasons = append(reasons, "it sounds like "+rc.CurrentTrack.Title)
		}
	}
	if track.PlayCount > e.trendingMinPlays {
		reasons = append(reasons, "it is trending right now")
	}

	if len(reasons) == 0 {
		return "Recommended based on your listening patterns"
	}
	return "Recommended because " + strings.Join(reasons, " and ")
}
