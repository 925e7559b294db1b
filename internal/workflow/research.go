// Package workflow orchestrates the research and publish flows: it owns
// lifecycle transitions in the store and sequences calls to the content
// generator and the CMS. Handlers and CLI commands call into here.
package workflow

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/localpages/internal/content"
	"github.com/sells-group/localpages/internal/model"
	"github.com/sells-group/localpages/internal/resilience"
	"github.com/sells-group/localpages/internal/seo"
	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/pkg/anthropic"
)

// Business identifies the brand the generated pages sell for. Service is
// the service line used in prompts and keywords ("dumpster rental");
// the rest feeds the LocalBusiness structured data block.
type Business struct {
	Service   string
	Name      string
	Telephone string
	SiteURL   string
}

// ResearchParams is the input for one research job.
type ResearchParams struct {
	LocationID   string         `json:"location_id"`
	PageType     model.PageType `json:"page_type"`
	Topic        string         `json:"topic,omitempty"`
	Neighborhood string         `json:"neighborhood,omitempty"`
}

// Research runs content generation jobs end to end: create the job
// record, generate, parse, enrich with structured data, and persist the
// outcome. A job row always ends in a terminal state.
type Research struct {
	store       store.Store
	generator   anthropic.Generator
	business    Business
	maxAttempts int
}

// NewResearch creates a Research workflow. Generation is attempted once
// per job; a failed call fails the job and recovery is a caller-level
// re-run.
func NewResearch(st store.Store, gen anthropic.Generator, business Business) *Research {
	return &Research{store: st, generator: gen, business: business, maxAttempts: 1}
}

// WithMaxAttempts raises the number of generation attempts per job.
// Values below one are ignored.
func (w *Research) WithMaxAttempts(n int) *Research {
	if n > 0 {
		w.maxAttempts = n
	}
	return w
}

// Run executes one research job. Validation and location lookup happen
// before any row is written; after the job row exists, every failure marks
// it failed with the error message and returns the original error.
func (w *Research) Run(ctx context.Context, params ResearchParams) (*model.ResearchJob, error) {
	if err := validateResearchParams(params); err != nil {
		return nil, err
	}

	loc, err := w.store.GetLocation(ctx, params.LocationID)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "location", ID: params.LocationID}
		}
		return nil, eris.Wrap(err, "workflow: load location")
	}

	job, err := w.store.CreateResearchJob(ctx, model.ResearchJob{
		LocationID:   loc.ID,
		PageType:     params.PageType,
		Topic:        params.Topic,
		Neighborhood: params.Neighborhood,
		Status:       model.JobStatusProcessing,
	})
	if err != nil {
		return nil, eris.Wrap(err, "workflow: create research job")
	}

	logger := zap.L().With(
		zap.String("job_id", job.ID),
		zap.String("city", loc.City),
		zap.String("page_type", string(params.PageType)),
	)
	logger.Info("research job started")

	targets := model.TargetsFor(params.PageType)
	prompt := content.BuildPrompt(content.Request{
		Service:             w.business.Service,
		City:                loc.City,
		State:               loc.State,
		PageType:            params.PageType,
		Topic:               params.Topic,
		Neighborhood:        params.Neighborhood,
		TargetWordCount:     targets.Words,
		TargetQuestionCount: targets.Questions,
	})

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxAttempts = w.maxAttempts
	raw, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (string, error) {
		return w.generator.Complete(ctx, prompt)
	})
	if err != nil {
		return nil, w.fail(ctx, logger, job.ID, &GenerationError{Err: err})
	}

	generated, err := content.ParseResponse(raw)
	if err != nil {
		return nil, w.fail(ctx, logger, job.ID, err)
	}

	enriched := w.enrich(generated, loc)

	results := &model.JobResults{
		Title:           generated.Title,
		MetaDescription: generated.MetaDescription,
		Content:         enriched,
		Questions:       generated.Questions,
		Keywords:        generated.Keywords,
	}
	if err := w.store.CompleteResearchJob(ctx, job.ID, results, generated.WordCount, generated.QuestionsCount); err != nil {
		return nil, w.fail(ctx, logger, job.ID, eris.Wrap(err, "workflow: complete research job"))
	}

	logger.Info("research job completed",
		zap.Int("word_count", generated.WordCount),
		zap.Int("questions", generated.QuestionsCount))

	job.Status = model.JobStatusCompleted
	job.Results = results
	job.WordCount = generated.WordCount
	job.QuestionsCount = generated.QuestionsCount
	return job, nil
}

// fail marks the job failed with the error's message and returns the
// original error. A failed status write is logged but never masks cause.
func (w *Research) fail(ctx context.Context, logger *zap.Logger, jobID string, cause error) error {
	logger.Error("research job failed", zap.Error(cause))
	if err := w.store.FailResearchJob(ctx, jobID, cause.Error()); err != nil {
		logger.Error("failed to mark job failed", zap.Error(err))
	}
	return cause
}

// enrich appends FAQPage and LocalBusiness JSON-LD fragments to the
// generated HTML so published pages carry structured data.
func (w *Research) enrich(g *content.Generated, loc *model.Location) string {
	body := g.Content

	if len(g.Questions) > 0 {
		items := make([]seo.FAQItem, 0, len(g.Questions))
		for _, qa := range g.Questions {
			items = append(items, seo.FAQItem{Question: qa.Question, Answer: qa.Answer})
		}
		body += "\n" + seo.FAQSchema(items)
	}

	name := w.business.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", loc.City, w.business.Service)
	}
	body += "\n" + seo.LocalBusinessSchema(seo.LocalBusinessParams{
		Name:        name,
		Description: g.MetaDescription,
		City:        loc.City,
		Region:      loc.StateAbbr,
		Country:     "US",
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		Telephone:   w.business.Telephone,
		URL:         w.business.SiteURL,
		AreaServed:  []string{loc.City},
	})

	return body
}

func validateResearchParams(params ResearchParams) error {
	if params.LocationID == "" {
		return &ValidationError{Field: "location_id", Reason: "required"}
	}
	if !params.PageType.Valid() {
		return &ValidationError{Field: "page_type", Reason: fmt.Sprintf("unknown value %q", params.PageType)}
	}
	if params.PageType == model.PageTypeTopic && params.Topic == "" {
		return &ValidationError{Field: "topic", Reason: "required for topic pages"}
	}
	if params.PageType == model.PageTypeNeighborhood && params.Neighborhood == "" {
		return &ValidationError{Field: "neighborhood", Reason: "required for neighborhood pages"}
	}
	return nil
}
