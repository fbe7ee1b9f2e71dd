package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/waveformlabs/track-recommender/internal/cache"
	"github.com/waveformlabs/track-recommender/internal/catalog"
	"github.com/waveformlabs/track-recommender/internal/config"
	"github.com/waveformlabs/track-recommender/internal/engine"
	"github.com/waveformlabs/track-recommender/internal/handler"
	"github.com/waveformlabs/track-recommender/internal/profile"
	"github.com/waveformlabs/track-recommender/internal/repository"
	"github.com/waveformlabs/track-recommender/internal/router"
	"github.com/waveformlabs/track-recommender/internal/service"
	"github.com/waveformlabs/track-recommender/internal/similarity"
	"github.com/waveformlabs/track-recommender/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatalf("database not ready: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatalf("failed to migrate down %v", err)
		}
		log.Println("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatalf("failed to migrate up %v", err)
	}

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool); err != nil {
		log.Fatalf("failed to check seed %v", err)
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis config %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	recCache := cache.NewCache(redisClient, cfg.CacheTTL)
	if err := recCache.Ping(ctx); err != nil {
		log.Fatalf("failed to connect to redis %v", err)
	}
	log.Println("connected to Redis")

	// ------------ Engine ---------------
	repo := repository.NewRepository(pool)
	catalogStore := catalog.NewStore()
	simEngine := similarity.NewEngine()
	profileStore := profile.NewStore(cfg.SimilarUserThreshold)
	recEngine := engine.New(catalogStore, simEngine, profileStore, cfg.TrendingMinPlays)

	svc := service.NewService(repo, recCache, catalogStore, simEngine, profileStore, recEngine)

	// Initial catalog load + similarity matrix build
	count, err := svc.ReloadCatalog(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog %v", err)
	}
	log.Printf("catalog loaded with %d tracks", count)

	// ---------------- Server --------------------
	h := handler.NewHandler(svc)
	srv := router.Setup(h)

	log.Printf("Server running on %s", cfg.Addr())
	log.Fatal(http.ListenAndServe(cfg.Addr(), srv))
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Printf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations applied successfully")
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return fmt.Errorf("check tracks count: %w", err)
	}
	if count > 0 {
		log.Printf("database already seeded (%d tracks), skipping", count)
		return nil
	}
	return seeds.Setup(ctx, pool)
}
