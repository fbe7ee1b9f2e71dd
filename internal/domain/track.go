package domain

import "time"

type Track struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Genre     string    `json:"genre"`
	PlayCount int64     `json:"play_count"`
	CreatedAt time.Time `json:"created_at"`
}
