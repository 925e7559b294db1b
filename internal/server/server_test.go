package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/localpages/internal/model"
	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/internal/workflow"
	"github.com/sells-group/localpages/pkg/wordpress"
)

const generatedReply = "```json\n" + `{
  "title": "Dumpster Rental in Austin, TX",
  "metaDescription": "Same-day dumpster rental in Austin.",
  "content": "<h2>Dumpster Rental in Austin</h2><p>one two three four five</p>",
  "questions": [{"question": "How much?", "answer": "It depends on size."}],
  "keywords": ["dumpster rental austin"]
}` + "\n```"

// stubGenerator returns a canned reply, or an error when reply is empty.
type stubGenerator struct {
	reply string
}

func (g *stubGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	if g.reply == "" {
		return "", eris.New("generation unavailable")
	}
	return g.reply, nil
}

// stubWP implements wordpress.Client with fixed responses. When down is
// set, every call fails.
type stubWP struct {
	down   bool
	nextID int
}

func (s *stubWP) CreatePage(ctx context.Context, params wordpress.CreatePageParams) (*wordpress.Page, error) {
	if s.down {
		return nil, &wordpress.APIError{StatusCode: 503, Message: "down"}
	}
	s.nextID++
	return &wordpress.Page{ID: s.nextID, Slug: params.Slug, Status: params.Status, Link: "https://example.com/" + params.Slug}, nil
}

func (s *stubWP) UpdatePage(ctx context.Context, id int, params wordpress.UpdatePageParams) (*wordpress.Page, error) {
	if s.down {
		return nil, &wordpress.APIError{StatusCode: 503, Message: "down"}
	}
	return &wordpress.Page{ID: id, Slug: params.Slug, Status: params.Status}, nil
}

func (s *stubWP) GetPage(ctx context.Context, id int) (*wordpress.Page, error) { return nil, nil }
func (s *stubWP) GetPageBySlug(ctx context.Context, slug string) (*wordpress.Page, error) {
	return nil, nil
}
func (s *stubWP) DeletePage(ctx context.Context, id int, force bool) error { return nil }
func (s *stubWP) PublishPage(ctx context.Context, id int) (*wordpress.Page, error) {
	return s.UpdatePage(ctx, id, wordpress.UpdatePageParams{Status: "publish"})
}
func (s *stubWP) CreatePageHierarchy(ctx context.Context, parent wordpress.CreatePageParams, children []wordpress.CreatePageParams) (*wordpress.PageHierarchy, error) {
	return nil, nil
}
func (s *stubWP) BulkPublish(ctx context.Context, ids []int) *wordpress.BulkResult { return nil }
func (s *stubWP) TestConnection(ctx context.Context) bool { return !s.down }
func (s *stubWP) GetCategories(ctx context.Context) ([]wordpress.Term, error) { return nil, nil }
func (s *stubWP) CreateCategory(ctx context.Context, name, description string) (*wordpress.Term, error) {
	return nil, nil
}
func (s *stubWP) GetTags(ctx context.Context) ([]wordpress.Term, error) { return nil, nil }
func (s *stubWP) CreateTag(ctx context.Context, name, description string) (*wordpress.Term, error) {
	return nil, nil
}

type testEnv struct {
	store  store.Store
	wp     *stubWP
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	wp := &stubWP{}
	business := workflow.Business{Service: "dumpster rental", Name: "Sells Dumpsters"}
	publish := workflow.NewPublish(st, wp)
	srv := New(Config{
		Store:     st,
		Research:  workflow.NewResearch(st, &stubGenerator{reply: generatedReply}, business),
		Publish:   publish,
		Bulk:      workflow.NewBulkPublish(publish, 1000),
		WordPress: wp,
	})

	return &testEnv{store: st, wp: wp, router: srv.Router()}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (e *testEnv) seedLocation(t *testing.T) *model.Location {
	t.Helper()
	loc, err := e.store.CreateLocation(context.Background(), model.Location{
		City: "Austin", State: "Texas", StateAbbr: "TX",
	})
	require.NoError(t, err)
	return loc
}

func (e *testEnv) seedCompletedJob(t *testing.T, locationID string) *model.ResearchJob {
	t.Helper()
	ctx := context.Background()

	job, err := e.store.CreateResearchJob(ctx, model.ResearchJob{
		LocationID: locationID,
		PageType:   model.PageTypeMainCity,
		Status:     model.JobStatusProcessing,
	})
	require.NoError(t, err)

	results := &model.JobResults{
		Title:           "Dumpster Rental in Austin, TX",
		MetaDescription: "Same-day dumpster rental in Austin.",
		Content:         "<h2>Austin</h2><p>body</p>",
		Keywords:        []string{"dumpster rental austin"},
	}
	require.NoError(t, e.store.CompleteResearchJob(ctx, job.ID, results, 8200, 45))

	job, err = e.store.GetResearchJob(ctx, job.ID)
	require.NoError(t, err)
	return job
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeInto[map[string]string](t, rec)["status"])
}

func TestDoctor(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/doctor", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	env.wp.down = true
	rec = env.request(t, http.MethodGet, "/doctor", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	checks := decodeInto[map[string]string](t, rec)
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "unreachable", checks["wordpress"])
}

func TestLocationEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/locations/", model.Location{
		City: "Austin", State: "Texas", StateAbbr: "TX", Population: 979882,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeInto[model.Location](t, rec)
	assert.NotEmpty(t, created.ID)

	rec = env.request(t, http.MethodPost, "/locations/", model.Location{City: "Austin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodGet, "/locations/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	locs := decodeInto[[]model.Location](t, rec)
	require.Len(t, locs, 1)
	assert.Equal(t, created.ID, locs[0].ID)

	rec = env.request(t, http.MethodGet, "/locations/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/locations/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	created.Population = 1000000
	rec = env.request(t, http.MethodPut, "/locations/"+created.ID, created)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListLocationsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/locations/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateResearchJobEndpoint(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)

	rec := env.request(t, http.MethodPost, "/research/", workflow.ResearchParams{
		LocationID: loc.ID,
		PageType:   model.PageTypeMainCity,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	job := decodeInto[model.ResearchJob](t, rec)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	require.NotNil(t, job.Results)
	assert.Equal(t, "Dumpster Rental in Austin, TX", job.Results.Title)
}

func TestCreateResearchJobValidation(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)

	rec := env.request(t, http.MethodPost, "/research/", workflow.ResearchParams{
		LocationID: loc.ID,
		PageType:   "landing",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/research/", workflow.ResearchParams{
		LocationID: "ghost",
		PageType:   model.PageTypeMainCity,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListResearchJobsFilter(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)
	env.seedCompletedJob(t, loc.ID)

	rec := env.request(t, http.MethodGet, "/research/?status=completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeInto[[]model.ResearchJob](t, rec), 1)

	rec = env.request(t, http.MethodGet, "/research/?status=failed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPublishEndpoint(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)
	job := env.seedCompletedJob(t, loc.ID)

	rec := env.request(t, http.MethodPost, "/publish/", workflow.PublishParams{JobID: job.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	result := decodeInto[workflow.PublishResult](t, rec)
	assert.Equal(t, 1, result.PostID)
	assert.Equal(t, "austin-tx", result.Slug)
	assert.Empty(t, result.Warning)

	rec = env.request(t, http.MethodGet, "/pages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeInto[[]model.PublishedPage](t, rec), 1)
}

func TestPublishEndpointJobNotCompleted(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)

	job, err := env.store.CreateResearchJob(context.Background(), model.ResearchJob{
		LocationID: loc.ID,
		PageType:   model.PageTypeMainCity,
		Status:     model.JobStatusProcessing,
	})
	require.NoError(t, err)

	rec := env.request(t, http.MethodPost, "/publish/", workflow.PublishParams{JobID: job.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishEndpointUnknownJob(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodPost, "/publish/", workflow.PublishParams{JobID: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkPublishEndpoint(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)
	job := env.seedCompletedJob(t, loc.ID)

	rec := env.request(t, http.MethodPut, "/publish/", workflow.BulkPublishParams{
		JobIDs: []string{job.ID, "ghost"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeInto[workflow.BulkPublishResult](t, rec)
	require.Len(t, result.Success, 1)
	assert.Equal(t, job.ID, result.Success[0].JobID)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "ghost", result.Failed[0].JobID)
}

func TestUpdatePublishEndpoint(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)
	job := env.seedCompletedJob(t, loc.ID)

	rec := env.request(t, http.MethodPut, "/publish/42", workflow.UpdateParams{JobID: job.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, decodeInto[workflow.PublishResult](t, rec).PostID)
}

func TestKeywordEndpoints(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)

	rec := env.request(t, http.MethodPost, "/keywords/", model.Keyword{
		LocationID: loc.ID,
		Keyword:    "dumpster rental austin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeInto[model.Keyword](t, rec)
	assert.NotEmpty(t, created.ID)

	rec = env.request(t, http.MethodPost, "/keywords/", model.Keyword{Keyword: "orphan"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	created.CurrentRank = 4
	rec = env.request(t, http.MethodPut, "/keywords/"+created.ID, created)
	assert.Equal(t, http.StatusOK, rec.Code)

	created.ID = ""
	rec = env.request(t, http.MethodPut, "/keywords/ghost", created)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodGet, "/keywords/?location_id="+loc.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	kws := decodeInto[[]model.Keyword](t, rec)
	require.Len(t, kws, 1)
	assert.Equal(t, 4, kws[0].CurrentRank)
}

func TestAnalyticsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t)
	env.seedCompletedJob(t, loc.ID)

	rec := env.request(t, http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	summary := decodeInto[model.AnalyticsSummary](t, rec)
	assert.Equal(t, 1, summary.Locations)
	assert.Equal(t, 1, summary.JobsByStatus["completed"])
	assert.Equal(t, 8200, summary.TotalWordCount)
}

func TestInvalidJSONBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/locations/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")
}
