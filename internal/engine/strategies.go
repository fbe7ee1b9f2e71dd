package engine

import (
	"sort"

	"github.com/waveformlabs/track-recommender/internal/domain"
)

const (
	contentSimilarityThreshold = 0.3

	timeOfDayScore      = 0.8
	timeOfDayConfidence = 0.7
	moodScore           = 0.7
	moodConfidence      = 0.6
	activityScore       = 0.6
	activityConfidence  = 0.5

	trendingScore      = 0.5
	trendingConfidence = 0.4
)

var timeOfDayGenres = map[domain.TimeOfDay][]string{
	domain.TimeMorning:   {"Ambient", "Chillout"},
	domain.TimeAfternoon: {"Pop", "Rock"},
	domain.TimeEvening:   {"Jazz", "Electronic"},
	domain.TimeNight:     {"Ambient", "Classical"},
}

var moodGenres = map[domain.Mood][]string{
	domain.MoodEnergetic:   {"Rock", "Electronic"},
	domain.MoodCalm:        {"Ambient", "Chillout"},
	domain.MoodHappy:       {"Pop", "Dance"},
	domain.MoodMelancholic: {"Jazz", "Blues"},
}

var activityGenres = map[domain.Activity][]string{
	domain.ActivityWorkout: {"Rock", "Electronic"},
	domain.ActivityStudy:   {"Classical", "Ambient"},
	domain.ActivityParty:   {"Dance", "Electronic"},
	domain.ActivityRelax:   {"Chillout", "Jazz"},
}

// collaborative recommends tracks heard by similar listeners but not
// by this one. Tracks already in the requester's history never come
// back from here.
func (e *Engine) collaborative(rc domain.RecommendationContext, limit int) []candidate {
	if rc.Profile == nil {
		return nil
	}

	similarUsers := e.profiles.FindSimilarUsers(rc.Profile)
	if len(similarUsers) == 0 {
		return nil
	}

	// The context can carry session plays the profile has not absorbed
	// yet; those count as heard as well.
	sessionSeen := make(map[int64]struct{}, len(rc.RecentTracks))
	for _, id := range rc.RecentTracks {
		sessionSeen[id] = struct{}{}
	}

	best := make(map[int64]candidate)
	for _, su := range similarUsers {
		for _, trackID := range su.Profile.RecentTracks {
			if rc.Profile.HasHeard(trackID) {
				continue
			}
			if _, ok := sessionSeen[trackID]; ok {
				continue
			}
			track, ok := e.catalog.Track(trackID)
			if !ok {
				continue
			}
			score := su.Similarity * float64(su.Profile.PlayCounts[trackID])
			if score <= 0 {
				continue
			}
			// The same track can surface from several similar users;
			// keep the strongest vote.
			if prev, ok := best[trackID]; ok && prev.score >= score {
				continue
			}
			best[trackID] = candidate{
				track:      track,
				score:      score,
				reason:     "Liked by users with similar taste",
				confidence: su.Similarity,
			}
		}
	}

	return sortCandidates(best, limit)
}

// contentBased recommends tracks similar to the one playing now.
func (e *Engine) contentBased(rc domain.RecommendationContext, limit int) []candidate {
	if rc.CurrentTrack == nil {
		return nil
	}

	row := e.sim.Row(rc.CurrentTrack.ID)
	if len(row) == 0 {
		return nil
	}

	matches := make(map[int64]candidate)
	for trackID, sim := range row {
		if sim <= contentSimilarityThreshold {
			continue
		}
		track, ok := e.catalog.Track(trackID)
		if !ok {
			continue
		}
		matches[trackID] = candidate{
			track:      track,
			score:      sim,
			reason:     "Similar to " + rc.CurrentTrack.Title,
			confidence: sim,
		}
	}

	return sortCandidates(matches, limit)
}

// contextual matches catalog genres against whichever of time-of-day,
// mood, and activity the context carries. Unknown enum values simply
// miss the lookup tables and contribute nothing.
func (e *Engine) contextual(rc domain.RecommendationContext, limit int) []candidate {
	var out []candidate

	if genres, ok := timeOfDayGenres[rc.TimeOfDay]; ok {
		out = append(out, e.genreMatches(genres, limit, timeOfDayScore, timeOfDayConfidence,
			"Matches your "+string(rc.TimeOfDay)+" vibe")...)
	}
	if genres, ok := moodGenres[rc.Mood]; ok {
		out = append(out, e.genreMatches(genres, limit, moodScore, moodConfidence,
			"Fits your "+string(rc.Mood)+" mood")...)
	}
	if genres, ok := activityGenres[rc.Activity]; ok {
		out = append(out, e.genreMatches(genres, limit, activityScore, activityConfidence,
			"Good for "+string(rc.Activity))...)
	}

	return out
}

func (e *Engine) genreMatches(genres []string, limit int, score, confidence float64, reason string) []candidate {
	wanted := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		wanted[g] = struct{}{}
	}

	var out []candidate
	for _, track := range e.catalog.Tracks() {
		if _, ok := wanted[track.Genre]; !ok {
			continue
		}
		out = append(out, candidate{
			track:      track,
			score:      score,
			reason:     reason,
			confidence: confidence,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// trending surfaces the most-played tracks above the popularity
// floor, ignoring the listener entirely.
func (e *Engine) trending(_ domain.RecommendationContext, limit int) []candidate {
	var popular []domain.Track
	for _, track := range e.catalog.Tracks() {
		if track.PlayCount > e.trendingMinPlays {
			popular = append(popular, track)
		}
	}

	sort.Slice(popular, func(i, j int) bool {
		if popular[i].PlayCount != popular[j].PlayCount {
			return popular[i].PlayCount > popular[j].PlayCount
		}
		return popular[i].ID < popular[j].ID
	})

	if len(popular) > limit {
		popular = popular[:limit]
	}

	out := make([]candidate, 0, len(popular))
	for _, track := range popular {
		out = append(out, candidate{
			track:      track,
			score:      trendingScore,
			reason:     "Trending right now",
			confidence: trendingConfidence,
		})
	}
	return out
}

// sortCandidates orders a strategy's votes descending by score with
// ascending track id on ties, truncated to limit.
func sortCandidates(byID map[int64]candidate, limit int) []candidate {
	out := make([]candidate, 0, len(byID))
	for _, c := range byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].track.ID < out[j].track.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
