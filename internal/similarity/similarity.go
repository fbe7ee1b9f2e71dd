package similarity

import (
	"math"
	"sort"
	"sync"

	"github.com/waveformlabs/track-recommender/internal/domain"
)

// Signal weights for pairwise track similarity.
const (
	genreWeight     = 0.4
	artistWeight    = 0.3
	playCountWeight = 0.2
	recencyWeight   = 0.1
)

// TrackSimilarity scores how alike two tracks are, in [0,1].
// Same-genre and same-artist matches dominate; play-count and
// creation-time closeness fill in the rest.
func TrackSimilarity(a, b domain.Track) float64 {
	score := 0.0

	if a.Genre == b.Genre {
		score += genreWeight
	}
	if a.Artist == b.Artist {
		score += artistWeight
	}

	score += playCountWeight * closeness(float64(a.PlayCount), float64(b.PlayCount))
	score += recencyWeight * closeness(float64(a.CreatedAt.Unix()), float64(b.CreatedAt.Unix()))

	return math.Min(score, 1.0)
}

// closeness maps two magnitudes to [0,1]: 1 when equal, approaching 0
// as they diverge. Both zero yields 0, not NaN.
func closeness(x, y float64) float64 {
	max := math.Max(x, y)
	if max == 0 {
		return 0
	}
	return 1 - math.Abs(x-y)/max
}

// Engine caches the pairwise similarity matrix for a catalog
// snapshot. Rebuild swaps the matrix wholesale; readers during a
// rebuild keep seeing the previous one.
type Engine struct {
	mu   sync.RWMutex
	rows map[int64]map[int64]float64
}

func NewEngine() *Engine {
	return &Engine{rows: make(map[int64]map[int64]float64)}
}

// Rebuild recomputes the full matrix. O(n^2) over the catalog, so it
// runs only on catalog reloads, never per request.
func (e *Engine) Rebuild(tracks []domain.Track) {
	rows := make(map[int64]map[int64]float64, len(tracks))
	for _, a := range tracks {
		row := make(map[int64]float64, len(tracks)-1)
		for _, b := range tracks {
			if a.ID == b.ID {
				continue
			}
			row[b.ID] = TrackSimilarity(a, b)
		}
		rows[a.ID] = row
	}

	e.mu.Lock()
	e.rows = rows
	e.mu.Unlock()
}

// Row returns a track's similarity row. Callers must not modify it;
// nil means the track is unknown to the current matrix.
func (e *Engine) Row(trackID int64) map[int64]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rows[trackID]
}

type Neighbor struct {
	TrackID    int64
	Similarity float64
}

// NearestNeighbors returns up to n tracks most similar to trackID,
// descending by similarity with ascending id breaking ties.
func (e *Engine) NearestNeighbors(trackID int64, n int) []Neighbor {
	row := e.Row(trackID)
	if len(row) == 0 {
		return nil
	}

	neighbors := make([]Neighbor, 0, len(row))
	for id, sim := range row {
		neighbors = append(neighbors, Neighbor{TrackID: id, Similarity: sim})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].TrackID < neighbors[j].TrackID
	})

	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors
}
