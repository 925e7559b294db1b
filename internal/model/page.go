package model

import "time"

// PublishStatus mirrors the WordPress page status values we write.
type PublishStatus string

const (
	PublishStatusPublish PublishStatus = "publish"
	PublishStatusDraft   PublishStatus = "draft"
	PublishStatusPending PublishStatus = "pending"
)

// PublishedPage records a page that was successfully pushed to WordPress.
// Created only after the external publish call succeeds; never deleted by
// the workflows.
type PublishedPage struct {
	ID            string        `json:"id"`
	LocationID    string        `json:"location_id"`
	ResearchJobID string        `json:"research_job_id,omitempty"`
	WPPostID      int           `json:"wp_post_id"`
	URL           string        `json:"url"`
	PageType      PageType      `json:"page_type"`
	Topic         string        `json:"topic,omitempty"`
	Neighborhood  string        `json:"neighborhood,omitempty"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	ParentPostID  *int          `json:"parent_post_id,omitempty"`
	Status        PublishStatus `json:"status"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
