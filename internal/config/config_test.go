package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_POOL_SIZE", "CACHE_TTL", "TRENDING_MIN_PLAYS", "SIMILAR_USER_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DBPoolSize != 20 {
		t.Errorf("expected default pool size 20, got %d", cfg.DBPoolSize)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected default TTL 10m, got %v", cfg.CacheTTL)
	}
	if cfg.TrendingMinPlays != 1000 {
		t.Errorf("expected default trending floor 1000, got %d", cfg.TrendingMinPlays)
	}
	if cfg.SimilarUserThreshold != 0.3 {
		t.Errorf("expected default threshold 0.3, got %f", cfg.SimilarUserThreshold)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("TRENDING_MIN_PLAYS", "500")
	t.Setenv("SIMILAR_USER_THRESHOLD", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected TTL 30s, got %v", cfg.CacheTTL)
	}
	if cfg.TrendingMinPlays != 500 {
		t.Errorf("expected trending floor 500, got %d", cfg.TrendingMinPlays)
	}
	if cfg.SimilarUserThreshold != 0.25 {
		t.Errorf("expected threshold 0.25, got %f", cfg.SimilarUserThreshold)
	}
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("SIMILAR_USER_THRESHOLD", "high")

	if got := getEnvInt("PORT", 8080); got != 8080 {
		t.Errorf("expected int fallback 8080, got %d", got)
	}
	if got := getEnvDuration("CACHE_TTL", 10*time.Minute); got != 10*time.Minute {
		t.Errorf("expected duration fallback 10m, got %v", got)
	}
	if got := getEnvFloat("SIMILAR_USER_THRESHOLD", 0.3); got != 0.3 {
		t.Errorf("expected float fallback 0.3, got %f", got)
	}

	t.Setenv("DATABASE_URL", "")
	if got := getEnv("DATABASE_URL", "fallback"); got != "fallback" {
		t.Errorf("expected string fallback, got %q", got)
	}
}
