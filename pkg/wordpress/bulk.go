package wordpress

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PageHierarchy is the result of CreatePageHierarchy.
type PageHierarchy struct {
	Parent   *Page
	Children []*Page
}

// CreatePageHierarchy creates the parent page first, then all children
// concurrently with their parent set to the new page's ID. A child
// failure does not cancel its siblings; the first child error is
// returned after all children settle.
func (c *httpClient) CreatePageHierarchy(ctx context.Context, parent CreatePageParams, children []CreatePageParams) (*PageHierarchy, error) {
	parentPage, err := c.CreatePage(ctx, parent)
	if err != nil {
		return nil, eris.Wrap(err, "wordpress: create hierarchy parent")
	}

	childPages := make([]*Page, len(children))
	childErrs := make([]error, len(children))

	var g errgroup.Group
	for i, child := range children {
		child.ParentID = parentPage.ID
		g.Go(func() error {
			childPages[i], childErrs[i] = c.CreatePage(ctx, child)
			return nil
		})
	}
	_ = g.Wait()

	result := &PageHierarchy{Parent: parentPage, Children: make([]*Page, 0, len(children))}
	for i, page := range childPages {
		if childErrs[i] != nil {
			zap.L().Warn("wordpress: hierarchy child failed",
				zap.String("slug", children[i].Slug),
				zap.Error(childErrs[i]),
			)
			if err == nil {
				err = childErrs[i]
			}
			continue
		}
		result.Children = append(result.Children, page)
	}

	if err != nil {
		return result, eris.Wrap(err, "wordpress: create hierarchy children")
	}
	return result, nil
}

// BulkFailure records one failed publish attempt.
type BulkFailure struct {
	ID    int
	Error string
}

// BulkResult partitions a bulk publish into succeeded and failed IDs.
type BulkResult struct {
	Success []int
	Failed  []BulkFailure
}

// BulkPublish attempts to publish every page ID concurrently. Individual
// failures are collected, never propagated; the batch always runs to
// completion.
func (c *httpClient) BulkPublish(ctx context.Context, ids []int) *BulkResult {
	outcomes := make([]error, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			_, outcomes[i] = c.PublishPage(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkResult{}
	for i, err := range outcomes {
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: ids[i], Error: err.Error()})
			continue
		}
		result.Success = append(result.Success, ids[i])
	}

	return result
}
