package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/waveformlabs/track-recommender/internal/domain"
)

// POST /users/{userID}/events
func (h *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}

	if req.TrackID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid track_id")
		return
	}

	action := domain.PlaybackAction(req.Action)
	switch action {
	case domain.ActionPlay, domain.ActionSkip, domain.ActionLike:
	default:
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Action must be play, skip or like")
		return
	}

	if err := h.service.RecordEvent(r.Context(), userID, req.TrackID, action); err != nil {
		if errors.Is(err, domain.ErrTrackNotFound) {
			writeError(w, http.StatusNotFound, "track_not_found",
				fmt.Sprintf("Track with ID %d does not exist", req.TrackID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

// POST /catalog/reload
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.ReloadCatalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to reload catalog")
		return
	}

	writeJSON(w, http.StatusOK, ReloadResponse{
		Tracks: count,
		Status: "reloaded",
	})
}
