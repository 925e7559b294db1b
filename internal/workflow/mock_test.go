package workflow

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/localpages/internal/model"
	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/pkg/wordpress"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateLocation(ctx context.Context, loc model.Location) (*model.Location, error) {
	args := m.Called(ctx, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *mockStore) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *mockStore) ListLocations(ctx context.Context) ([]model.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *mockStore) UpdateLocation(ctx context.Context, loc model.Location) error {
	return m.Called(ctx, loc).Error(0)
}

func (m *mockStore) CreateResearchJob(ctx context.Context, job model.ResearchJob) (*model.ResearchJob, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResearchJob), args.Error(1)
}

func (m *mockStore) CompleteResearchJob(ctx context.Context, jobID string, results *model.JobResults, wordCount, questionsCount int) error {
	return m.Called(ctx, jobID, results, wordCount, questionsCount).Error(0)
}

func (m *mockStore) FailResearchJob(ctx context.Context, jobID string, errMsg string) error {
	return m.Called(ctx, jobID, errMsg).Error(0)
}

func (m *mockStore) GetResearchJob(ctx context.Context, jobID string) (*model.ResearchJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResearchJob), args.Error(1)
}

func (m *mockStore) ListResearchJobs(ctx context.Context, filter store.JobFilter) ([]model.ResearchJob, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ResearchJob), args.Error(1)
}

func (m *mockStore) CreatePublishedPage(ctx context.Context, page model.PublishedPage) (*model.PublishedPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublishedPage), args.Error(1)
}

func (m *mockStore) GetPublishedPageBySlug(ctx context.Context, slug string) (*model.PublishedPage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublishedPage), args.Error(1)
}

func (m *mockStore) ListPublishedPages(ctx context.Context, locationID string) ([]model.PublishedPage, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublishedPage), args.Error(1)
}

func (m *mockStore) CreateKeyword(ctx context.Context, kw model.Keyword) (*model.Keyword, error) {
	args := m.Called(ctx, kw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Keyword), args.Error(1)
}

func (m *mockStore) ListKeywords(ctx context.Context, locationID string) ([]model.Keyword, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Keyword), args.Error(1)
}

func (m *mockStore) UpdateKeyword(ctx context.Context, kw model.Keyword) error {
	return m.Called(ctx, kw).Error(0)
}

func (m *mockStore) Analytics(ctx context.Context) (*model.AnalyticsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsSummary), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockWP struct {
	mock.Mock
}

func (m *mockWP) CreatePage(ctx context.Context, params wordpress.CreatePageParams) (*wordpress.Page, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Page), args.Error(1)
}

func (m *mockWP) UpdatePage(ctx context.Context, id int, params wordpress.UpdatePageParams) (*wordpress.Page, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Page), args.Error(1)
}

func (m *mockWP) GetPage(ctx context.Context, id int) (*wordpress.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Page), args.Error(1)
}

func (m *mockWP) GetPageBySlug(ctx context.Context, slug string) (*wordpress.Page, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Page), args.Error(1)
}

func (m *mockWP) DeletePage(ctx context.Context, id int, force bool) error {
	return m.Called(ctx, id, force).Error(0)
}

func (m *mockWP) PublishPage(ctx context.Context, id int) (*wordpress.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Page), args.Error(1)
}

func (m *mockWP) CreatePageHierarchy(ctx context.Context, parent wordpress.CreatePageParams, children []wordpress.CreatePageParams) (*wordpress.PageHierarchy, error) {
	args := m.Called(ctx, parent, children)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.PageHierarchy), args.Error(1)
}

func (m *mockWP) BulkPublish(ctx context.Context, ids []int) *wordpress.BulkResult {
	args := m.Called(ctx, ids)
	return args.Get(0).(*wordpress.BulkResult)
}

func (m *mockWP) TestConnection(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *mockWP) GetCategories(ctx context.Context) ([]wordpress.Term, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wordpress.Term), args.Error(1)
}

func (m *mockWP) CreateCategory(ctx context.Context, name, description string) (*wordpress.Term, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Term), args.Error(1)
}

func (m *mockWP) GetTags(ctx context.Context) ([]wordpress.Term, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wordpress.Term), args.Error(1)
}

func (m *mockWP) CreateTag(ctx context.Context, name, description string) (*wordpress.Term, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Term), args.Error(1)
}
