package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/localpages/internal/db"
	"github.com/sells-group/localpages/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_job":   `INSERT INTO research_jobs (id, location_id, page_type, topic, neighborhood, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	"complete_job": `UPDATE research_jobs SET status = $1, results = $2, word_count = $3, questions_count = $4, completed_at = $5, updated_at = $6 WHERE id = $7`,
	"fail_job":     `UPDATE research_jobs SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4`,
	"get_job":      `SELECT id, location_id, page_type, topic, neighborhood, status, results, word_count, questions_count, error_message, created_at, updated_at, completed_at FROM research_jobs WHERE id = $1`,
	"get_location": `SELECT id, city, state, state_abbr, county, population, latitude, longitude, zip_codes, priority_rank, created_at, updated_at FROM locations WHERE id = $1`,
	"insert_page":  `INSERT INTO published_pages (id, location_id, research_job_id, wp_post_id, url, page_type, topic, neighborhood, title, slug, parent_post_id, status, published_at, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS locations (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	city          TEXT NOT NULL,
	state         TEXT NOT NULL,
	state_abbr    TEXT NOT NULL,
	county        TEXT,
	population    INTEGER,
	latitude      DOUBLE PRECISION,
	longitude     DOUBLE PRECISION,
	zip_codes     JSONB,
	priority_rank INTEGER,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS research_jobs (
	id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	location_id     TEXT NOT NULL REFERENCES locations(id),
	page_type       TEXT NOT NULL,
	topic           TEXT,
	neighborhood    TEXT,
	status          TEXT NOT NULL DEFAULT 'pending',
	results         JSONB,
	word_count      INTEGER,
	questions_count INTEGER,
	error_message   TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS published_pages (
	id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	location_id     TEXT NOT NULL REFERENCES locations(id),
	research_job_id TEXT REFERENCES research_jobs(id),
	wp_post_id      INTEGER NOT NULL,
	url             TEXT NOT NULL,
	page_type       TEXT NOT NULL,
	topic           TEXT,
	neighborhood    TEXT,
	title           TEXT NOT NULL,
	slug            TEXT NOT NULL,
	parent_post_id  INTEGER,
	status          TEXT NOT NULL DEFAULT 'publish',
	published_at    TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS keywords (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	location_id   TEXT NOT NULL REFERENCES locations(id),
	keyword       TEXT NOT NULL,
	search_volume INTEGER,
	difficulty    INTEGER,
	current_rank  INTEGER,
	target_rank   INTEGER NOT NULL DEFAULT 1,
	target_url    TEXT,
	last_checked  TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_research_jobs_location ON research_jobs(location_id);
CREATE INDEX IF NOT EXISTS idx_research_jobs_status ON research_jobs(status);
CREATE INDEX IF NOT EXISTS idx_research_jobs_created ON research_jobs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_published_pages_location ON published_pages(location_id);
CREATE INDEX IF NOT EXISTS idx_published_pages_slug ON published_pages(slug);
CREATE INDEX IF NOT EXISTS idx_keywords_location ON keywords(location_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateLocation(ctx context.Context, loc model.Location) (*model.Location, error) {
	loc.ID = uuid.New().String()
	now := time.Now().UTC()
	loc.CreatedAt = now
	loc.UpdatedAt = now

	zipJSON, err := json.Marshal(loc.ZipCodes)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal zip codes")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO locations (id, city, state, state_abbr, county, population, latitude, longitude, zip_codes, priority_rank, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		loc.ID, loc.City, loc.State, loc.StateAbbr, nullStr(loc.County), nullInt(loc.Population),
		loc.Latitude, loc.Longitude, zipJSON, nullInt(loc.PriorityRank), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert location")
	}
	return &loc, nil
}

func (s *PostgresStore) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, city, state, state_abbr, county, population, latitude, longitude, zip_codes, priority_rank, created_at, updated_at FROM locations WHERE id = $1`,
		id)
	return scanPGLocation(row)
}

func (s *PostgresStore) ListLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, city, state, state_abbr, county, population, latitude, longitude, zip_codes, priority_rank, created_at, updated_at FROM locations ORDER BY priority_rank NULLS LAST, city`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list locations")
	}
	defer rows.Close()

	var locs []model.Location
	for rows.Next() {
		loc, err := scanPGLocation(rows)
		if err != nil {
			return nil, err
		}
		locs = append(locs, *loc)
	}
	return locs, eris.Wrap(rows.Err(), "postgres: list locations iterate")
}

func (s *PostgresStore) UpdateLocation(ctx context.Context, loc model.Location) error {
	zipJSON, err := json.Marshal(loc.ZipCodes)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal zip codes")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE locations SET city = $1, state = $2, state_abbr = $3, county = $4, population = $5, latitude = $6, longitude = $7, zip_codes = $8, priority_rank = $9, updated_at = $10 WHERE id = $11`,
		loc.City, loc.State, loc.StateAbbr, nullStr(loc.County), nullInt(loc.Population),
		loc.Latitude, loc.Longitude, zipJSON, nullInt(loc.PriorityRank), time.Now().UTC(), loc.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update location %s", loc.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrap(ErrNotFound, fmt.Sprintf("location %s", loc.ID))
	}
	return nil
}

func (s *PostgresStore) CreateResearchJob(ctx context.Context, job model.ResearchJob) (*model.ResearchJob, error) {
	job.ID = uuid.New().String()
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO research_jobs (id, location_id, page_type, topic, neighborhood, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		job.ID, job.LocationID, string(job.PageType), nullStr(job.Topic), nullStr(job.Neighborhood),
		string(job.Status), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert research job")
	}
	return &job, nil
}

func (s *PostgresStore) CompleteResearchJob(ctx context.Context, jobID string, results *model.JobResults, wordCount, questionsCount int) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal results")
	}

	now := time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE research_jobs SET status = $1, results = $2, word_count = $3, questions_count = $4, completed_at = $5, updated_at = $6 WHERE id = $7`,
		string(model.JobStatusCompleted), resultsJSON, wordCount, questionsCount, now, now, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete research job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrap(ErrNotFound, fmt.Sprintf("research job %s", jobID))
	}
	return nil
}

func (s *PostgresStore) FailResearchJob(ctx context.Context, jobID string, errMsg string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE research_jobs SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4`,
		string(model.JobStatusFailed), errMsg, time.Now().UTC(), jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fail research job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrap(ErrNotFound, fmt.Sprintf("research job %s", jobID))
	}
	return nil
}

func (s *PostgresStore) GetResearchJob(ctx context.Context, jobID string) (*model.ResearchJob, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, location_id, page_type, topic, neighborhood, status, results, word_count, questions_count, error_message, created_at, updated_at, completed_at FROM research_jobs WHERE id = $1`,
		jobID)
	return scanPGResearchJob(row)
}

func (s *PostgresStore) ListResearchJobs(ctx context.Context, filter JobFilter) ([]model.ResearchJob, error) {
	query := `SELECT id, location_id, page_type, topic, neighborhood, status, results, word_count, questions_count, error_message, created_at, updated_at, completed_at FROM research_jobs WHERE true`
	args := []any{}
	argIdx := 1

	if filter.LocationID != "" {
		query += fmt.Sprintf(` AND location_id = $%d`, argIdx)
		args = append(args, filter.LocationID)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list research jobs")
	}
	defer rows.Close()

	var jobs []model.ResearchJob
	for rows.Next() {
		job, err := scanPGResearchJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, eris.Wrap(rows.Err(), "postgres: list research jobs iterate")
}

func (s *PostgresStore) CreatePublishedPage(ctx context.Context, page model.PublishedPage) (*model.PublishedPage, error) {
	page.ID = uuid.New().String()
	page.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO published_pages (id, location_id, research_job_id, wp_post_id, url, page_type, topic, neighborhood, title, slug, parent_post_id, status, published_at, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		page.ID, page.LocationID, nullStr(page.ResearchJobID), page.WPPostID, page.URL,
		string(page.PageType), nullStr(page.Topic), nullStr(page.Neighborhood), page.Title, page.Slug,
		page.ParentPostID, string(page.Status), page.PublishedAt, page.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert published page")
	}
	return &page, nil
}

func (s *PostgresStore) GetPublishedPageBySlug(ctx context.Context, slug string) (*model.PublishedPage, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, location_id, research_job_id, wp_post_id, url, page_type, topic, neighborhood, title, slug, parent_post_id, status, published_at, created_at FROM published_pages WHERE slug = $1`,
		slug)
	return scanPGPublishedPage(row)
}

func (s *PostgresStore) ListPublishedPages(ctx context.Context, locationID string) ([]model.PublishedPage, error) {
	query := `SELECT id, location_id, research_job_id, wp_post_id, url, page_type, topic, neighborhood, title, slug, parent_post_id, status, published_at, created_at FROM published_pages`
	args := []any{}
	if locationID != "" {
		query += ` WHERE location_id = $1`
		args = append(args, locationID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list published pages")
	}
	defer rows.Close()

	var pages []model.PublishedPage
	for rows.Next() {
		page, err := scanPGPublishedPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, eris.Wrap(rows.Err(), "postgres: list published pages iterate")
}

func (s *PostgresStore) CreateKeyword(ctx context.Context, kw model.Keyword) (*model.Keyword, error) {
	kw.ID = uuid.New().String()
	now := time.Now().UTC()
	kw.CreatedAt = now
	kw.UpdatedAt = now
	if kw.TargetRank == 0 {
		kw.TargetRank = 1
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO keywords (id, location_id, keyword, search_volume, difficulty, current_rank, target_rank, target_url, last_checked, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		kw.ID, kw.LocationID, kw.Keyword, nullInt(kw.SearchVolume), nullInt(kw.Difficulty),
		nullInt(kw.CurrentRank), kw.TargetRank, nullStr(kw.TargetURL), kw.LastChecked, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert keyword")
	}
	return &kw, nil
}

func (s *PostgresStore) ListKeywords(ctx context.Context, locationID string) ([]model.Keyword, error) {
	query := `SELECT id, location_id, keyword, search_volume, difficulty, current_rank, target_rank, target_url, last_checked, created_at, updated_at FROM keywords`
	args := []any{}
	if locationID != "" {
		query += ` WHERE location_id = $1`
		args = append(args, locationID)
	}
	query += ` ORDER BY keyword`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list keywords")
	}
	defer rows.Close()

	var kws []model.Keyword
	for rows.Next() {
		kw, err := scanPGKeyword(rows)
		if err != nil {
			return nil, err
		}
		kws = append(kws, *kw)
	}
	return kws, eris.Wrap(rows.Err(), "postgres: list keywords iterate")
}

func (s *PostgresStore) UpdateKeyword(ctx context.Context, kw model.Keyword) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE keywords SET keyword = $1, search_volume = $2, difficulty = $3, current_rank = $4, target_rank = $5, target_url = $6, last_checked = $7, updated_at = $8 WHERE id = $9`,
		kw.Keyword, nullInt(kw.SearchVolume), nullInt(kw.Difficulty), nullInt(kw.CurrentRank),
		kw.TargetRank, nullStr(kw.TargetURL), kw.LastChecked, time.Now().UTC(), kw.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update keyword %s", kw.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrap(ErrNotFound, fmt.Sprintf("keyword %s", kw.ID))
	}
	return nil
}

func (s *PostgresStore) Analytics(ctx context.Context) (*model.AnalyticsSummary, error) {
	summary := &model.AnalyticsSummary{JobsByStatus: map[string]int{}}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&summary.Locations); err != nil {
		return nil, eris.Wrap(err, "postgres: count locations")
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM published_pages`).Scan(&summary.PublishedPages); err != nil {
		return nil, eris.Wrap(err, "postgres: count published pages")
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM keywords`).Scan(&summary.Keywords); err != nil {
		return nil, eris.Wrap(err, "postgres: count keywords")
	}

	rows, err := s.pool.Query(ctx, `SELECT status, COUNT(*) FROM research_jobs GROUP BY status`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: count jobs by status")
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan job counts")
		}
		summary.JobsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: job counts iterate")
	}

	var total, avg *float64
	err = s.pool.QueryRow(ctx,
		`SELECT SUM(word_count)::float8, AVG(word_count)::float8 FROM research_jobs WHERE status = $1`,
		string(model.JobStatusCompleted),
	).Scan(&total, &avg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: word count aggregates")
	}
	if total != nil {
		summary.TotalWordCount = int(*total)
	}
	if avg != nil {
		summary.AvgWordCount = *avg
	}

	return summary, nil
}

// pgx scans NULL columns into pointer destinations, so the scan helpers
// here use pointers where sqlite uses sql.Null types.

func scanPGLocation(row pgx.Row) (*model.Location, error) {
	var loc model.Location
	var county *string
	var population, priorityRank *int
	var zipJSON []byte

	err := row.Scan(&loc.ID, &loc.City, &loc.State, &loc.StateAbbr, &county, &population,
		&loc.Latitude, &loc.Longitude, &zipJSON, &priorityRank, &loc.CreatedAt, &loc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, "location")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan location")
	}

	if county != nil {
		loc.County = *county
	}
	if population != nil {
		loc.Population = *population
	}
	if priorityRank != nil {
		loc.PriorityRank = *priorityRank
	}
	if len(zipJSON) > 0 {
		if err := json.Unmarshal(zipJSON, &loc.ZipCodes); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal zip codes")
		}
	}
	return &loc, nil
}

func scanPGResearchJob(row pgx.Row) (*model.ResearchJob, error) {
	var job model.ResearchJob
	var topic, neighborhood, errMsg *string
	var wordCount, questionsCount *int
	var resultsJSON []byte

	err := row.Scan(&job.ID, &job.LocationID, &job.PageType, &topic, &neighborhood, &job.Status,
		&resultsJSON, &wordCount, &questionsCount, &errMsg, &job.CreatedAt, &job.UpdatedAt, &job.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, "research job")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan research job")
	}

	if topic != nil {
		job.Topic = *topic
	}
	if neighborhood != nil {
		job.Neighborhood = *neighborhood
	}
	if wordCount != nil {
		job.WordCount = *wordCount
	}
	if questionsCount != nil {
		job.QuestionsCount = *questionsCount
	}
	if errMsg != nil {
		job.ErrorMessage = *errMsg
	}
	if len(resultsJSON) > 0 {
		job.Results = &model.JobResults{}
		if err := json.Unmarshal(resultsJSON, job.Results); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal results")
		}
	}
	return &job, nil
}

func scanPGPublishedPage(row pgx.Row) (*model.PublishedPage, error) {
	var page model.PublishedPage
	var jobID, topic, neighborhood *string

	err := row.Scan(&page.ID, &page.LocationID, &jobID, &page.WPPostID, &page.URL, &page.PageType,
		&topic, &neighborhood, &page.Title, &page.Slug, &page.ParentPostID, &page.Status,
		&page.PublishedAt, &page.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, "published page")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan published page")
	}

	if jobID != nil {
		page.ResearchJobID = *jobID
	}
	if topic != nil {
		page.Topic = *topic
	}
	if neighborhood != nil {
		page.Neighborhood = *neighborhood
	}
	return &page, nil
}

func scanPGKeyword(row pgx.Row) (*model.Keyword, error) {
	var kw model.Keyword
	var searchVolume, difficulty, currentRank *int
	var targetURL *string

	err := row.Scan(&kw.ID, &kw.LocationID, &kw.Keyword, &searchVolume, &difficulty, &currentRank,
		&kw.TargetRank, &targetURL, &kw.LastChecked, &kw.CreatedAt, &kw.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, "keyword")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan keyword")
	}

	if searchVolume != nil {
		kw.SearchVolume = *searchVolume
	}
	if difficulty != nil {
		kw.Difficulty = *difficulty
	}
	if currentRank != nil {
		kw.CurrentRank = *currentRank
	}
	if targetURL != nil {
		kw.TargetURL = *targetURL
	}
	return &kw, nil
}
