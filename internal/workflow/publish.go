package workflow

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/localpages/internal/model"
	"github.com/sells-group/localpages/internal/resilience"
	"github.com/sells-group/localpages/internal/seo"
	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/pkg/wordpress"
)

// PublishParams is the input for publishing one completed job to the CMS.
type PublishParams struct {
	JobID  string              `json:"job_id"`
	Status model.PublishStatus `json:"status,omitempty"` // defaults to publish
}

// PublishResult reports the created CMS page. Warning is set when the
// page went live but local bookkeeping could not be written.
type PublishResult struct {
	PostID  int    `json:"post_id"`
	URL     string `json:"url"`
	Slug    string `json:"slug"`
	Warning string `json:"warning,omitempty"`
}

// Publish pushes completed research jobs to WordPress. The CMS write is
// the point of no return: once the page exists remotely, local bookkeeping
// failures degrade to a warning instead of failing the operation.
type Publish struct {
	store       store.Store
	wp          wordpress.Client
	maxAttempts int
}

// NewPublish creates a Publish workflow. The CMS create is attempted
// once; a failed call surfaces to the caller with job and page records
// untouched.
func NewPublish(st store.Store, wp wordpress.Client) *Publish {
	return &Publish{store: st, wp: wp, maxAttempts: 1}
}

// WithMaxAttempts raises the number of CMS create attempts per publish.
// Values below one are ignored.
func (w *Publish) WithMaxAttempts(n int) *Publish {
	if n > 0 {
		w.maxAttempts = n
	}
	return w
}

// Run publishes one job. The job must exist, be completed, and carry
// results; violations are reported before any CMS call. Topic and
// neighborhood pages are nested under the location's main city page when
// one exists.
func (w *Publish) Run(ctx context.Context, params PublishParams) (*PublishResult, error) {
	if w.wp == nil {
		return nil, eris.New("workflow: wordpress client not configured")
	}
	if params.JobID == "" {
		return nil, &ValidationError{Field: "job_id", Reason: "required"}
	}
	status := params.Status
	if status == "" {
		status = model.PublishStatusPublish
	}

	job, loc, err := w.loadCompletedJob(ctx, params.JobID)
	if err != nil {
		return nil, err
	}

	slug := pageSlug(job, loc)
	parentID := 0
	if job.PageType != model.PageTypeMainCity {
		parent, err := w.wp.GetPageBySlug(ctx, seo.Slug(loc.City, loc.StateAbbr))
		if err != nil {
			return nil, eris.Wrap(err, "workflow: look up parent page")
		}
		if parent != nil {
			parentID = parent.ID
		}
	}

	focusKeyword := ""
	if len(job.Results.Keywords) > 0 {
		focusKeyword = job.Results.Keywords[0]
	}

	page, err := resilience.DoVal(ctx, wpRetryConfig(w.maxAttempts), func(ctx context.Context) (*wordpress.Page, error) {
		return w.wp.CreatePage(ctx, wordpress.CreatePageParams{
			Title:           job.Results.Title,
			Content:         job.Results.Content,
			Slug:            slug,
			Status:          string(status),
			ParentID:        parentID,
			MetaDescription: job.Results.MetaDescription,
			FocusKeyword:    focusKeyword,
			Excerpt:         job.Results.MetaDescription,
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "workflow: create page")
	}

	result := &PublishResult{PostID: page.ID, URL: page.Link, Slug: page.Slug}

	now := time.Now().UTC()
	var parentPtr *int
	if parentID > 0 {
		parentPtr = &parentID
	}
	_, err = w.store.CreatePublishedPage(ctx, model.PublishedPage{
		LocationID:    loc.ID,
		ResearchJobID: job.ID,
		WPPostID:      page.ID,
		URL:           page.Link,
		PageType:      job.PageType,
		Topic:         job.Topic,
		Neighborhood:  job.Neighborhood,
		Title:         job.Results.Title,
		Slug:          page.Slug,
		ParentPostID:  parentPtr,
		Status:        status,
		PublishedAt:   &now,
	})
	if err != nil {
		zap.L().Warn("page published but record not saved",
			zap.String("job_id", job.ID),
			zap.Int("post_id", page.ID),
			zap.Error(err))
		result.Warning = "page published but local record could not be saved"
	}

	zap.L().Info("page published",
		zap.String("job_id", job.ID),
		zap.Int("post_id", page.ID),
		zap.String("slug", page.Slug))
	return result, nil
}

// UpdateParams is the input for pushing revised content to an existing page.
type UpdateParams struct {
	JobID  string `json:"job_id"`
	PostID int    `json:"post_id"`
}

// Update overwrites an existing CMS page with the job's current results.
func (w *Publish) Update(ctx context.Context, params UpdateParams) (*PublishResult, error) {
	if w.wp == nil {
		return nil, eris.New("workflow: wordpress client not configured")
	}
	if params.JobID == "" {
		return nil, &ValidationError{Field: "job_id", Reason: "required"}
	}
	if params.PostID <= 0 {
		return nil, &ValidationError{Field: "post_id", Reason: "required"}
	}

	job, _, err := w.loadCompletedJob(ctx, params.JobID)
	if err != nil {
		return nil, err
	}

	page, err := w.wp.UpdatePage(ctx, params.PostID, wordpress.UpdatePageParams{
		Title:   job.Results.Title,
		Content: job.Results.Content,
		Excerpt: job.Results.MetaDescription,
	})
	if err != nil {
		return nil, eris.Wrap(err, "workflow: update page")
	}

	zap.L().Info("page updated",
		zap.String("job_id", job.ID),
		zap.Int("post_id", page.ID))
	return &PublishResult{PostID: page.ID, URL: page.Link, Slug: page.Slug}, nil
}

// loadCompletedJob fetches the job and its location, enforcing the
// completed-with-results precondition shared by Run and Update.
func (w *Publish) loadCompletedJob(ctx context.Context, jobID string) (*model.ResearchJob, *model.Location, error) {
	job, err := w.store.GetResearchJob(ctx, jobID)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			return nil, nil, &NotFoundError{Entity: "research job", ID: jobID}
		}
		return nil, nil, eris.Wrap(err, "workflow: load research job")
	}
	if job.Status != model.JobStatusCompleted {
		return nil, nil, &InvalidStateError{
			Entity: "research job",
			ID:     job.ID,
			State:  string(job.Status),
			Want:   string(model.JobStatusCompleted),
		}
	}
	if job.Results == nil {
		return nil, nil, &InvalidStateError{
			Entity: "research job",
			ID:     job.ID,
			State:  "completed without results",
			Want:   "completed with results",
		}
	}

	loc, err := w.store.GetLocation(ctx, job.LocationID)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			return nil, nil, &NotFoundError{Entity: "location", ID: job.LocationID}
		}
		return nil, nil, eris.Wrap(err, "workflow: load location")
	}
	return job, loc, nil
}

// wpRetryConfig makes at most maxAttempts CMS writes. When attempts are
// raised above one, only transport failures and transient HTTP statuses
// are retried; client errors surface immediately.
func wpRetryConfig(maxAttempts int) resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = maxAttempts
	cfg.ShouldRetry = func(err error) bool {
		var apiErr *wordpress.APIError
		if eris.As(err, &apiErr) {
			return resilience.IsTransientHTTPStatus(apiErr.StatusCode)
		}
		return resilience.IsTransient(err)
	}
	return cfg
}

// pageSlug derives the URL slug for a job's page: city-state first, with
// the topic and neighborhood qualifiers appended when set. Empty parts
// are skipped, so a main city page is just city-state.
func pageSlug(job *model.ResearchJob, loc *model.Location) string {
	return seo.Slug(loc.City, loc.StateAbbr, job.Topic, job.Neighborhood)
}
