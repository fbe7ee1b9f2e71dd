package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/waveformlabs/track-recommender/internal/domain"
	"github.com/waveformlabs/track-recommender/internal/service"
)

// GET /users/{userID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	// Parse and validate user_id
	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	// Parse and validate limit
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	params := service.RecommendParams{
		Limit:     limit,
		TimeOfDay: domain.TimeOfDay(r.URL.Query().Get("time_of_day")),
		Mood:      domain.Mood(r.URL.Query().Get("mood")),
		Activity:  domain.Activity(r.URL.Query().Get("activity")),
	}

	// Optional seed track for content-based similarity
	if trackStr := r.URL.Query().Get("current_track"); trackStr != "" {
		trackID, err := strconv.ParseInt(trackStr, 10, 64)
		if err != nil || trackID <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid current_track parameter")
			return
		}
		params.CurrentTrackID = trackID
	}

	result, err := h.service.Recommend(r.Context(), userID, params)
	if err != nil {
		// Unknown seed track
		if errors.Is(err, domain.ErrTrackNotFound) {
			writeError(w, http.StatusNotFound, "track_not_found",
				fmt.Sprintf("Track with ID %d does not exist", params.CurrentTrackID))
			return
		}
		// Request timeout
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	resp := RecommendationResponse{
		UserID:          userID,
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /tracks/{trackID}/explanation
func (h *Handler) GetExplanation(w http.ResponseWriter, r *http.Request) {
	trackIDStr := chi.URLParam(r, "trackID")
	trackID, err := strconv.ParseInt(trackIDStr, 10, 64)
	if err != nil || trackID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid track_id parameter")
		return
	}

	var userID int64
	if userStr := r.URL.Query().Get("user_id"); userStr != "" {
		parsed, err := strconv.ParseInt(userStr, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
			return
		}
		userID = parsed
	}

	explanation, err := h.service.Explain(userID, trackID)
	if err != nil {
		if errors.Is(err, domain.ErrTrackNotFound) {
			writeError(w, http.StatusNotFound, "track_not_found",
				fmt.Sprintf("Track with ID %d does not exist", trackID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, ExplanationResponse{
		TrackID:     trackID,
		Explanation: explanation,
	})
}
