package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/localpages/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Used for local
// development and tests; production runs Postgres.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS locations (
	id            TEXT PRIMARY KEY,
	city          TEXT NOT NULL,
	state         TEXT NOT NULL,
	state_abbr    TEXT NOT NULL,
	county        TEXT,
	population    INTEGER,
	latitude      REAL,
	longitude     REAL,
	zip_codes     TEXT,
	priority_rank INTEGER,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS research_jobs (
	id              TEXT PRIMARY KEY,
	location_id     TEXT NOT NULL REFERENCES locations(id),
	page_type       TEXT NOT NULL,
	topic           TEXT,
	neighborhood    TEXT,
	status          TEXT NOT NULL DEFAULT 'pending',
	results         TEXT,
	word_count      INTEGER,
	questions_count INTEGER,
	error_message   TEXT,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at    DATETIME
);

CREATE TABLE IF NOT EXISTS published_pages (
	id              TEXT PRIMARY KEY,
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
	published_at    DATETIME,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS keywords (
	id            TEXT PRIMARY KEY,
	location_id   TEXT NOT NULL REFERENCES locations(id),
	keyword       TEXT NOT NULL,
	search_volume INTEGER,
	difficulty    INTEGER,
	current_rank  INTEGER,
	target_rank   INTEGER NOT NULL DEFAULT 1,
	target_url    TEXT,
	last_checked  DATETIME,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_research_jobs_location ON research_jobs(location_id);
CREATE INDEX IF NOT EXISTS idx_research_jobs_status ON research_jobs(status);
CREATE INDEX IF NOT EXISTS idx_published_pages_location ON published_pages(location_id);
CREATE INDEX IF NOT EXISTS idx_published_pages_slug ON published_pages(slug);
CREATE INDEX IF NOT EXISTS idx_keywords_location ON keywords(location_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateLocation(ctx context.Context, loc model.Location) (*model.Location, error) {
	loc.ID = uuid.New().String()
	now := time.Now().UTC()
	loc.CreatedAt = now
	loc.UpdatedAt = now

	zipJSON, err := json.Marshal(loc.ZipCodes)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal zip codes")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO locations (id, city, state, state_abbr, county, population, latitude, longitude, zip_codes, priority_rank, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loc.ID, loc.City, loc.State, loc.StateAbbr, nullStr(loc.County), nullInt(loc.Population),
		loc.Latitude, loc.Longitude, string(zipJSON), nullInt(loc.PriorityRank), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert location")
	}
	return &loc, nil
}

func (s *SQLiteStore) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, city, state, state_abbr, county, population, latitude, longitude, zip_codes, priority_rank, created_at, updated_at
		 FROM locations WHERE id = ?`, id)
	return scanLocation(row)
}

func (s *SQLiteStore) ListLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, state, state_abbr, county, population, latitude, longitude, zip_codes, priority_rank, created_at, updated_at
		 FROM locations ORDER BY priority_rank IS NULL, priority_rank, city`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list locations")
	}
	defer rows.Close()

	var locs []model.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locs = append(locs, *loc)
	}
	return locs, eris.Wrap(rows.Err(), "sqlite: list locations iterate")
}

func (s *SQLiteStore) UpdateLocation(ctx context.Context, loc model.Location) error {
	zipJSON, err := json.Marshal(loc.ZipCodes)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal zip codes")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE locations SET city = ?, state = ?, state_abbr = ?, county = ?, population = ?, latitude = ?, longitude = ?, zip_codes = ?, priority_rank = ?, updated_at = ?
		 WHERE id = ?`,
		loc.City, loc.State, loc.StateAbbr, nullStr(loc.County), nullInt(loc.Population),
		loc.Latitude, loc.Longitude, string(zipJSON), nullInt(loc.PriorityRank), time.Now().UTC(), loc.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update location %s", loc.ID)
	}
	return checkRowsAffected(res, "location", loc.ID)
}

func (s *SQLiteStore) CreateResearchJob(ctx context.Context, job model.ResearchJob) (*model.ResearchJob, error) {
	job.ID = uuid.New().String()
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO research_jobs (id, location_id, page_type, topic, neighborhood, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.LocationID, string(job.PageType), nullStr(job.Topic), nullStr(job.Neighborhood),
		string(job.Status), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert research job")
	}
	return &job, nil
}

func (s *SQLiteStore) CompleteResearchJob(ctx context.Context, jobID string, results *model.JobResults, wordCount, questionsCount int) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal results")
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE research_jobs SET status = ?, results = ?, word_count = ?, questions_count = ?, completed_at = ?, updated_at = ?
		 WHERE id = ?`,
		string(model.JobStatusCompleted), string(resultsJSON), wordCount, questionsCount, now, now, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete research job %s", jobID)
	}
	return checkRowsAffected(res, "research job", jobID)
}

func (s *SQLiteStore) FailResearchJob(ctx context.Context, jobID string, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE research_jobs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		string(model.JobStatusFailed), errMsg, time.Now().UTC(), jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail research job %s", jobID)
	}
	return checkRowsAffected(res, "research job", jobID)
}

func (s *SQLiteStore) GetResearchJob(ctx context.Context, jobID string) (*model.ResearchJob, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, location_id, page_type, topic, neighborhood, status, results, word_count, questions_count, error_message, created_at, updated_at, completed_at
		 FROM research_jobs WHERE id = ?`, jobID)
	return scanResearchJob(row)
}

func (s *SQLiteStore) ListResearchJobs(ctx context.Context, filter JobFilter) ([]model.ResearchJob, error) {
	query := `SELECT id, location_id, page_type, topic, neighborhood, status, results, word_count, questions_count, error_message, created_at, updated_at, completed_at
		 FROM research_jobs WHERE 1=1`
	var args []any

	if filter.LocationID != "" {
		query += ` AND location_id = ?`
		args = append(args, filter.LocationID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list research jobs")
	}
	defer rows.Close()

	var jobs []model.ResearchJob
	for rows.Next() {
		job, err := scanResearchJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, eris.Wrap(rows.Err(), "sqlite: list research jobs iterate")
}

func (s *SQLiteStore) CreatePublishedPage(ctx context.Context, page model.PublishedPage) (*model.PublishedPage, error) {
	page.ID = uuid.New().String()
	page.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO published_pages (id, location_id, research_job_id, wp_post_id, url, page_type, topic, neighborhood, title, slug, parent_post_id, status, published_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		page.ID, page.LocationID, nullStr(page.ResearchJobID), page.WPPostID, page.URL,
		string(page.PageType), nullStr(page.Topic), nullStr(page.Neighborhood), page.Title, page.Slug,
		page.ParentPostID, string(page.Status), page.PublishedAt, page.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert published page")
	}
	return &page, nil
}

func (s *SQLiteStore) GetPublishedPageBySlug(ctx context.Context, slug string) (*model.PublishedPage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, location_id, research_job_id, wp_post_id, url, page_type, topic, neighborhood, title, slug, parent_post_id, status, published_at, created_at
		 FROM published_pages WHERE slug = ?`, slug)
	return scanPublishedPage(row)
}

func (s *SQLiteStore) ListPublishedPages(ctx context.Context, locationID string) ([]model.PublishedPage, error) {
	query := `SELECT id, location_id, research_job_id, wp_post_id, url, page_type, topic, neighborhood, title, slug, parent_post_id, status, published_at, created_at
		 FROM published_pages`
	var args []any
	if locationID != "" {
		query += ` WHERE location_id = ?`
		args = append(args, locationID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list published pages")
	}
	defer rows.Close()

	var pages []model.PublishedPage
	for rows.Next() {
		page, err := scanPublishedPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, eris.Wrap(rows.Err(), "sqlite: list published pages iterate")
}

func (s *SQLiteStore) CreateKeyword(ctx context.Context, kw model.Keyword) (*model.Keyword, error) {
	kw.ID = uuid.New().String()
	now := time.Now().UTC()
	kw.CreatedAt = now
	kw.UpdatedAt = now
	if kw.TargetRank == 0 {
		kw.TargetRank = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO keywords (id, location_id, keyword, search_volume, difficulty, current_rank, target_rank, target_url, last_checked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		kw.ID, kw.LocationID, kw.Keyword, nullInt(kw.SearchVolume), nullInt(kw.Difficulty),
		nullInt(kw.CurrentRank), kw.TargetRank, nullStr(kw.TargetURL), kw.LastChecked, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert keyword")
	}
	return &kw, nil
}

func (s *SQLiteStore) ListKeywords(ctx context.Context, locationID string) ([]model.Keyword, error) {
	query := `SELECT id, location_id, keyword, search_volume, difficulty, current_rank, target_rank, target_url, last_checked, created_at, updated_at
		 FROM keywords`
	var args []any
	if locationID != "" {
		query += ` WHERE location_id = ?`
		args = append(args, locationID)
	}
	query += ` ORDER BY keyword`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list keywords")
	}
	defer rows.Close()

	var kws []model.Keyword
	for rows.Next() {
		kw, err := scanKeyword(rows)
		if err != nil {
			return nil, err
		}
		kws = append(kws, *kw)
	}
	return kws, eris.Wrap(rows.Err(), "sqlite: list keywords iterate")
}

func (s *SQLiteStore) UpdateKeyword(ctx context.Context, kw model.Keyword) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE keywords SET keyword = ?, search_volume = ?, difficulty = ?, current_rank = ?, target_rank = ?, target_url = ?, last_checked = ?, updated_at = ?
		 WHERE id = ?`,
		kw.Keyword, nullInt(kw.SearchVolume), nullInt(kw.Difficulty), nullInt(kw.CurrentRank),
		kw.TargetRank, nullStr(kw.TargetURL), kw.LastChecked, time.Now().UTC(), kw.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update keyword %s", kw.ID)
	}
	return checkRowsAffected(res, "keyword", kw.ID)
}

func (s *SQLiteStore) Analytics(ctx context.Context) (*model.AnalyticsSummary, error) {
	summary := &model.AnalyticsSummary{JobsByStatus: map[string]int{}}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&summary.Locations); err != nil {
		return nil, eris.Wrap(err, "sqlite: count locations")
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM published_pages`).Scan(&summary.PublishedPages); err != nil {
		return nil, eris.Wrap(err, "sqlite: count published pages")
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM keywords`).Scan(&summary.Keywords); err != nil {
		return nil, eris.Wrap(err, "sqlite: count keywords")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM research_jobs GROUP BY status`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: count jobs by status")
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan job counts")
		}
		summary.JobsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: job counts iterate")
	}

	var total sql.NullInt64
	var avg sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT SUM(word_count), AVG(word_count) FROM research_jobs WHERE status = ?`,
		string(model.JobStatusCompleted),
	).Scan(&total, &avg)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: word count aggregates")
	}
	summary.TotalWordCount = int(total.Int64)
	summary.AvgWordCount = avg.Float64

	return summary, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrap(ErrNotFound, fmt.Sprintf("%s %s", entity, id))
	}
	return nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLocation(row scannable) (*model.Location, error) {
	var loc model.Location
	var county, zipJSON sql.NullString
	var population, priorityRank sql.NullInt64
	var lat, lon sql.NullFloat64

	err := row.Scan(&loc.ID, &loc.City, &loc.State, &loc.StateAbbr, &county, &population,
		&lat, &lon, &zipJSON, &priorityRank, &loc.CreatedAt, &loc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "location")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan location")
	}

	loc.County = county.String
	loc.Population = int(population.Int64)
	loc.PriorityRank = int(priorityRank.Int64)
	if lat.Valid && lon.Valid {
		loc.Latitude = &lat.Float64
		loc.Longitude = &lon.Float64
	}
	if zipJSON.Valid && zipJSON.String != "" && zipJSON.String != "null" {
		if err := json.Unmarshal([]byte(zipJSON.String), &loc.ZipCodes); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal zip codes")
		}
	}
	return &loc, nil
}

func scanResearchJob(row scannable) (*model.ResearchJob, error) {
	var job model.ResearchJob
	var topic, neighborhood, resultsJSON, errMsg sql.NullString
	var wordCount, questionsCount sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(&job.ID, &job.LocationID, &job.PageType, &topic, &neighborhood, &job.Status,
		&resultsJSON, &wordCount, &questionsCount, &errMsg, &job.CreatedAt, &job.UpdatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "research job")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan research job")
	}

	job.Topic = topic.String
	job.Neighborhood = neighborhood.String
	job.WordCount = int(wordCount.Int64)
	job.QuestionsCount = int(questionsCount.Int64)
	job.ErrorMessage = errMsg.String
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	if resultsJSON.Valid {
		job.Results = &model.JobResults{}
		if err := json.Unmarshal([]byte(resultsJSON.String), job.Results); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal results")
		}
	}
	return &job, nil
}

func scanPublishedPage(row scannable) (*model.PublishedPage, error) {
	var page model.PublishedPage
	var jobID, topic, neighborhood sql.NullString
	var parentPostID sql.NullInt64
	var publishedAt sql.NullTime

	err := row.Scan(&page.ID, &page.LocationID, &jobID, &page.WPPostID, &page.URL, &page.PageType,
		&topic, &neighborhood, &page.Title, &page.Slug, &parentPostID, &page.Status, &publishedAt, &page.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "published page")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan published page")
	}

	page.ResearchJobID = jobID.String
	page.Topic = topic.String
	page.Neighborhood = neighborhood.String
	if parentPostID.Valid {
		n := int(parentPostID.Int64)
		page.ParentPostID = &n
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		page.PublishedAt = &t
	}
	return &page, nil
}

func scanKeyword(row scannable) (*model.Keyword, error) {
	var kw model.Keyword
	var searchVolume, difficulty, currentRank sql.NullInt64
	var targetURL sql.NullString
	var lastChecked sql.NullTime

	err := row.Scan(&kw.ID, &kw.LocationID, &kw.Keyword, &searchVolume, &difficulty, &currentRank,
		&kw.TargetRank, &targetURL, &lastChecked, &kw.CreatedAt, &kw.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "keyword")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan keyword")
	}

	kw.SearchVolume = int(searchVolume.Int64)
	kw.Difficulty = int(difficulty.Int64)
	kw.CurrentRank = int(currentRank.Int64)
	kw.TargetURL = targetURL.String
	if lastChecked.Valid {
		t := lastChecked.Time
		kw.LastChecked = &t
	}
	return &kw, nil
}
