package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/localpages/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_GetResearchJob_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .* FROM research_jobs WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetResearchJob(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetResearchJob_Completed(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	resultsJSON, _ := json.Marshal(model.JobResults{
		Title:           "Dumpster Rental Austin TX",
		MetaDescription: "Fast local dumpster rental.",
		Content:         "<h2>Content</h2>",
	})
	now := time.Now().UTC()
	completed := now

	rows := pgxmock.NewRows([]string{
		"id", "location_id", "page_type", "topic", "neighborhood", "status",
		"results", "word_count", "questions_count", "error_message",
		"created_at", "updated_at", "completed_at",
	}).AddRow(
		"job-1", "loc-1", "main_city", nil, nil, "completed",
		resultsJSON, intPtr(8412), intPtr(45), nil,
		now, now, &completed,
	)

	mock.ExpectQuery(`SELECT .* FROM research_jobs WHERE id = \$1`).
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := s.GetResearchJob(context.Background(), "job-1")
	require.NoError(t, err)

	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.Equal(t, 8412, job.WordCount)
	require.NotNil(t, job.Results)
	assert.Equal(t, "Dumpster Rental Austin TX", job.Results.Title)
	require.NotNil(t, job.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateResearchJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO research_jobs`).
		WithArgs(pgxmock.AnyArg(), "loc-1", "topic", "roofing", nil, "processing", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	job, err := s.CreateResearchJob(context.Background(), model.ResearchJob{
		LocationID: "loc-1",
		PageType:   model.PageTypeTopic,
		Topic:      "roofing",
		Status:     model.JobStatusProcessing,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteResearchJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE research_jobs SET status = \$1, results = \$2`).
		WithArgs("completed", pgxmock.AnyArg(), 8412, 45, pgxmock.AnyArg(), pgxmock.AnyArg(), "job-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.CompleteResearchJob(context.Background(), "job-1", &model.JobResults{Title: "T"}, 8412, 45)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteResearchJob_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE research_jobs`).
		WithArgs("completed", pgxmock.AnyArg(), 0, 0, pgxmock.AnyArg(), pgxmock.AnyArg(), "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.CompleteResearchJob(context.Background(), "ghost", &model.JobResults{}, 0, 0)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FailResearchJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE research_jobs SET status = \$1, error_message = \$2`).
		WithArgs("failed", "generation timed out", pgxmock.AnyArg(), "job-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.FailResearchJob(context.Background(), "job-1", "generation timed out")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetLocation(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	lat, lon := 30.2672, -97.7431
	zips, _ := json.Marshal([]string{"78701", "78702"})
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "city", "state", "state_abbr", "county", "population",
		"latitude", "longitude", "zip_codes", "priority_rank", "created_at", "updated_at",
	}).AddRow(
		"loc-1", "Austin", "Texas", "TX", strPtr("Travis"), intPtr(974000),
		&lat, &lon, zips, intPtr(1), now, now,
	)

	mock.ExpectQuery(`SELECT .* FROM locations WHERE id = \$1`).
		WithArgs("loc-1").
		WillReturnRows(rows)

	loc, err := s.GetLocation(context.Background(), "loc-1")
	require.NoError(t, err)

	assert.Equal(t, "Austin", loc.City)
	assert.Equal(t, "Travis", loc.County)
	assert.Equal(t, 974000, loc.Population)
	require.NotNil(t, loc.Latitude)
	assert.InDelta(t, 30.2672, *loc.Latitude, 0.0001)
	assert.Equal(t, []string{"78701", "78702"}, loc.ZipCodes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreatePublishedPage(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	parent := 7
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO published_pages`).
		WithArgs(pgxmock.AnyArg(), "loc-1", "job-1", 42, "https://example.com/austin-tx",
			"main_city", nil, nil, "Dumpster Rental Austin TX", "austin-tx",
			&parent, "publish", &now, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	page, err := s.CreatePublishedPage(context.Background(), model.PublishedPage{
		LocationID:    "loc-1",
		ResearchJobID: "job-1",
		WPPostID:      42,
		URL:           "https://example.com/austin-tx",
		PageType:      model.PageTypeMainCity,
		Title:         "Dumpster Rental Austin TX",
		Slug:          "austin-tx",
		ParentPostID:  &parent,
		Status:        model.PublishStatusPublish,
		PublishedAt:   &now,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, page.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListResearchJobs_Filters(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows([]string{
		"id", "location_id", "page_type", "topic", "neighborhood", "status",
		"results", "word_count", "questions_count", "error_message",
		"created_at", "updated_at", "completed_at",
	})

	mock.ExpectQuery(`SELECT .* FROM research_jobs WHERE true AND location_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("loc-1", "failed", 25).
		WillReturnRows(rows)

	jobs, err := s.ListResearchJobs(context.Background(), JobFilter{
		LocationID: "loc-1",
		Status:     model.JobStatusFailed,
		Limit:      25,
	})
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateKeyword_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE keywords`).
		WithArgs("dumpster rental austin", nil, nil, nil, 1, nil, pgxmock.AnyArg(), pgxmock.AnyArg(), "kw-ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateKeyword(context.Background(), model.Keyword{
		ID:         "kw-ghost",
		Keyword:    "dumpster rental austin",
		TargetRank: 1,
	})
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
