package domain

type Recommendation struct {
	Track      Track   `json:"track"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []Recommendation
	CacheHit        bool
}
