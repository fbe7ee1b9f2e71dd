package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var genres = []string{
	"Electronic", "Rock", "Pop", "Jazz", "Ambient",
	"Classical", "Dance", "Chillout", "Blues",
}

var artistNames = []string{
	"Neon Drift", "The Velvet Static", "Aurora Fields", "Midnight Circuit",
	"Iron Harbor", "Paper Lanterns", "Glass Meridian", "Cobalt Sky",
	"The Quiet Engine", "Solar Margins", "Dust & Echoes", "Harbor Lights",
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE tracks, artists RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting artists")
	if err := seedArtists(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed artists: %w", err)
	}

	log.Println("[seed] inserting tracks")
	if err := seedTracks(ctx, pool, rng, 60); err != nil {
		return fmt.Errorf("seed tracks: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedArtists(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}

	for i, name := range artistNames {
		verified := rng.Float64() < 0.4
		trackCount := 60 / len(artistNames)
		totalPlays := int64(powerLawPlays(rng)) * int64(trackCount)

		base := i * 4
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))

		args = append(args, name, verified, trackCount, totalPlays)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO artists (name, verified, track_count, total_plays) VALUES " + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedTracks(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	titleWords := []string{
		"Midnight", "Golden", "Electric", "Silent", "Broken", "Endless",
		"Fading", "Neon", "Hollow", "Distant", "Velvet", "Restless",
	}
	titleNouns := []string{
		"Horizon", "Echo", "River", "Signal", "Garden", "Mirror",
		"Season", "Voltage", "Shoreline", "Orbit", "Lantern", "Current",
	}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		title := fmt.Sprintf("%s %s", titleWords[rng.Intn(len(titleWords))], titleNouns[rng.Intn(len(titleNouns))])
		if i >= len(titleWords) {
			title = fmt.Sprintf("%s %d", title, i/len(titleWords)+1)
		}

		artist := artistNames[i%len(artistNames)]
		genre := genres[i%len(genres)]
		playCount := powerLawPlays(rng)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(730))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, title, artist, genre, playCount, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO tracks (title, artist, genre, play_count, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// powerLawPlays skews play counts so a few tracks dominate, which
// keeps the trending floor meaningful.
func powerLawPlays(rng *rand.Rand) int64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 3.0) * 50000
	return int64(math.Round(raw))
}
