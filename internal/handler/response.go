package handler

import "github.com/waveformlabs/track-recommender/internal/domain"

type RecommendationResponse struct {
	UserID          int64                     `json:"user_id"`
	Recommendations []domain.Recommendation   `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type EventRequest struct {
	TrackID int64  `json:"track_id"`
	Action  string `json:"action"`
}

type ExplanationResponse struct {
	TrackID     int64  `json:"track_id"`
	Explanation string `json:"explanation"`
}

type ReloadResponse struct {
	Tracks int    `json:"tracks"`
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
