// Package store persists locations, research jobs, published pages, and
// keywords behind a driver-agnostic interface with Postgres and SQLite
// implementations.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/localpages/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
// Callers should test with eris.Is.
var ErrNotFound = eris.New("record not found")

// JobFilter specifies criteria for listing research jobs.
type JobFilter struct {
	LocationID string          `json:"location_id,omitempty"`
	Status     model.JobStatus `json:"status,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Offset     int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the dashboard backend.
type Store interface {
	// Locations
	CreateLocation(ctx context.Context, loc model.Location) (*model.Location, error)
	GetLocation(ctx context.Context, id string) (*model.Location, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
	UpdateLocation(ctx context.Context, loc model.Location) error

	// Research jobs
	CreateResearchJob(ctx context.Context, job model.ResearchJob) (*model.ResearchJob, error)
	CompleteResearchJob(ctx context.Context, jobID string, results *model.JobResults, wordCount, questionsCount int) error
	FailResearchJob(ctx context.Context, jobID string, errMsg string) error
	GetResearchJob(ctx context.Context, jobID string) (*model.ResearchJob, error)
	ListResearchJobs(ctx context.Context, filter JobFilter) ([]model.ResearchJob, error)

	// Published pages
	CreatePublishedPage(ctx context.Context, page model.PublishedPage) (*model.PublishedPage, error)
	GetPublishedPageBySlug(ctx context.Context, slug string) (*model.PublishedPage, error)
	ListPublishedPages(ctx context.Context, locationID string) ([]model.PublishedPage, error)

	// Keywords
	CreateKeyword(ctx context.Context, kw model.Keyword) (*model.Keyword, error)
	ListKeywords(ctx context.Context, locationID string) ([]model.Keyword, error)
	UpdateKeyword(ctx context.Context, kw model.Keyword) error

	// Analytics
	Analytics(ctx context.Context) (*model.AnalyticsSummary, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
