package workflow

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/localpages/internal/model"
)

// BulkPublishParams is the input for publishing a batch of jobs.
type BulkPublishParams struct {
	JobIDs []string            `json:"job_ids"`
	Status model.PublishStatus `json:"status,omitempty"`
}

// BulkItemFailure records one job that could not be published.
type BulkItemFailure struct {
	JobID string `json:"job_id"`
	Error string `json:"error"`
}

// BulkPublishResult partitions the batch into published jobs and failures,
// preserving input order within each slice.
type BulkPublishResult struct {
	Success []BulkItemSuccess `json:"success"`
	Failed  []BulkItemFailure `json:"failed"`
}

// BulkItemSuccess records one published job and its CMS page.
type BulkItemSuccess struct {
	JobID  string `json:"job_id"`
	PostID int    `json:"post_id"`
	URL    string `json:"url"`
}

// BulkPublish publishes batches sequentially, pacing CMS writes with a
// rate limiter. One failed job never aborts the batch; every job is
// attempted exactly once.
type BulkPublish struct {
	publish *Publish
	limiter *rate.Limiter
}

// NewBulkPublish creates a BulkPublish pacing at rps requests per second.
// Non-positive rps defaults to 1.
func NewBulkPublish(publish *Publish, rps float64) *BulkPublish {
	if rps <= 0 {
		rps = 1
	}
	return &BulkPublish{
		publish: publish,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Run publishes each job in order. The returned error is non-nil only when
// the context is cancelled; per-job failures land in the result.
func (w *BulkPublish) Run(ctx context.Context, params BulkPublishParams) (*BulkPublishResult, error) {
	if len(params.JobIDs) == 0 {
		return nil, &ValidationError{Field: "job_ids", Reason: "required"}
	}

	result := &BulkPublishResult{}
	for _, jobID := range params.JobIDs {
		if err := w.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		res, err := w.publish.Run(ctx, PublishParams{JobID: jobID, Status: params.Status})
		if err != nil {
			zap.L().Warn("bulk publish item failed",
				zap.String("job_id", jobID),
				zap.Error(err))
			result.Failed = append(result.Failed, BulkItemFailure{JobID: jobID, Error: err.Error()})
			continue
		}
		result.Success = append(result.Success, BulkItemSuccess{JobID: jobID, PostID: res.PostID, URL: res.URL})
	}

	zap.L().Info("bulk publish finished",
		zap.Int("requested", len(params.JobIDs)),
		zap.Int("published", len(result.Success)),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}
