package model

import "time"

// Keyword is rank-tracking reference data tied to a location. Managed
// independently of the research and publish workflows.
type Keyword struct {
	ID           string     `json:"id"`
	LocationID   string     `json:"location_id"`
	Keyword      string     `json:"keyword"`
	SearchVolume int        `json:"search_volume,omitempty"`
	Difficulty   int        `json:"difficulty,omitempty"`
	CurrentRank  int        `json:"current_rank,omitempty"`
	TargetRank   int        `json:"target_rank"`
	TargetURL    string     `json:"target_url,omitempty"`
	LastChecked  *time.Time `json:"last_checked,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AnalyticsSummary holds the simple aggregate counts shown on the
// dashboard overview.
type AnalyticsSummary struct {
	Locations      int            `json:"locations"`
	JobsByStatus   map[string]int `json:"jobs_by_status"`
	PublishedPages int            `json:"published_pages"`
	Keywords       int            `json:"keywords"`
	AvgWordCount   float64        `json:"avg_word_count"`
	TotalWordCount int            `json:"total_word_count"`
}
