package repository

import (
	"context"
	"fmt"

	"github.com/waveformlabs/track-recommender/internal/domain"
)

// LoadTracks pulls the full track catalog for the in-memory store.
func (r *Repository) LoadTracks(ctx context.Context) ([]domain.Track, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, artist, genre, play_count, created_at
		FROM tracks
		ORDER BY id`,
	)

	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var items []domain.Track
	for rows.Next() {
		var t domain.Track
		err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Genre, &t.PlayCount, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over tracks: %w", err)
	}
	return items, nil
}

// LoadArtists pulls the artist records alongside the tracks.
func (r *Repository) LoadArtists(ctx context.Context) ([]domain.Artist, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, verified, track_count, total_plays
		FROM artists
		ORDER BY id`,
	)

	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	var items []domain.Artist
	for rows.Next() {
		var a domain.Artist
		err := rows.Scan(&a.ID, &a.Name, &a.Verified, &a.TrackCount, &a.TotalPlays)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over artists: %w", err)
	}
	return items, nil
}
