package domain

type Artist struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Verified   bool   `json:"verified"`
	TrackCount int    `json:"track_count"`
	TotalPlays int64  `json:"total_plays"`
}
