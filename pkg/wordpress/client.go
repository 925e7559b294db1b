// Package wordpress wraps the WordPress REST API (wp/v2) for page and
// taxonomy management, authenticated with an application password.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the WordPress operations used by the publish workflows.
type Client interface {
	CreatePage(ctx context.Context, params CreatePageParams) (*Page, error)
	UpdatePage(ctx context.Context, id int, params UpdatePageParams) (*Page, error)
	GetPage(ctx context.Context, id int) (*Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*Page, error)
	DeletePage(ctx context.Context, id int, force bool) error
	PublishPage(ctx context.Context, id int) (*Page, error)
	CreatePageHierarchy(ctx context.Context, parent CreatePageParams, children []CreatePageParams) (*PageHierarchy, error)
	BulkPublish(ctx context.Context, ids []int) *BulkResult
	TestConnection(ctx context.Context) bool
	GetCategories(ctx context.Context) ([]Term, error)
	CreateCategory(ctx context.Context, name, description string) (*Term, error)
	GetTags(ctx context.Context) ([]Term, error)
	CreateTag(ctx context.Context, name, description string) (*Term, error)
}

// CreatePageParams is the payload for creating a page.
type CreatePageParams struct {
	Title           string
	Content         string
	Slug            string
	Status          string // "publish", "draft", "pending"; defaults to "draft"
	ParentID        int
	MetaDescription string
	FocusKeyword    string
	Excerpt         string
	FeaturedImage   int
	Categories      []int
	Tags            []int
}

// UpdatePageParams is the payload for updating a page. Zero-valued fields
// are omitted from the request.
type UpdatePageParams struct {
	Title    string
	Content  string
	Slug     string
	Status   string
	ParentID int
	Excerpt  string
}

// RenderedField is WordPress's {rendered: "..."} wrapper.
type RenderedField struct {
	Rendered string `json:"rendered"`
}

// Page is a WordPress page resource.
type Page struct {
	ID       int           `json:"id"`
	Date     string        `json:"date"`
	Modified string        `json:"modified"`
	Slug     string        `json:"slug"`
	Status   string        `json:"status"`
	Type     string        `json:"type"`
	Link     string        `json:"link"`
	Title    RenderedField `json:"title"`
	Content  RenderedField `json:"content"`
	Excerpt  RenderedField `json:"excerpt"`
	Parent   int           `json:"parent"`
}

// Term is a category or tag.
type Term struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// APIError is returned when WordPress responds with a non-2xx status.
// Message carries the upstream error message when one was decodable.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("wordpress: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("wordpress: HTTP %d", e.StatusCode)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit throttles outbound calls to rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// httpClient implements Client using net/http with basic auth.
type httpClient struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a WordPress client for the given site. siteURL is the
// root of the WordPress install; the wp/v2 namespace is appended here.
func NewClient(siteURL, username, appPassword string, opts ...Option) Client {
	c := &httpClient{
		baseURL:  strings.TrimRight(siteURL, "/") + "/wp-json/wp/v2",
		username: username,
		password: appPassword,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// createPageBody is the wire shape for page create/update calls.
type createPageBody struct {
	Title         string         `json:"title,omitempty"`
	Content       string         `json:"content,omitempty"`
	Slug          string         `json:"slug,omitempty"`
	Status        string         `json:"status,omitempty"`
	Parent        int            `json:"parent,omitempty"`
	Excerpt       string         `json:"excerpt,omitempty"`
	Categories    []int          `json:"categories,omitempty"`
	Tags          []int          `json:"tags,omitempty"`
	FeaturedMedia int            `json:"featured_media,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
}

func (c *httpClient) CreatePage(ctx context.Context, params CreatePageParams) (*Page, error) {
	status := params.Status
	if status == "" {
		status = "draft"
	}

	body := createPageBody{
		Title:         params.Title,
		Content:       params.Content,
		Slug:          params.Slug,
		Status:        status,
		Parent:        params.ParentID,
		Excerpt:       params.Excerpt,
		Categories:    params.Categories,
		Tags:          params.Tags,
		FeaturedMedia: params.FeaturedImage,
	}

	// Yoast SEO meta, honored when the plugin is installed.
	if params.MetaDescription != "" || params.FocusKeyword != "" {
		body.Meta = map[string]any{}
		if params.MetaDescription != "" {
			body.Meta["_yoast_wpseo_metadesc"] = params.MetaDescription
		}
		if params.FocusKeyword != "" {
			body.Meta["_yoast_wpseo_focuskw"] = params.FocusKeyword
		}
	}

	var page Page
	if err := c.post(ctx, "/pages", body, &page); err != nil {
		return nil, eris.Wrap(err, "wordpress: create page")
	}
	return &page, nil
}

func (c *httpClient) UpdatePage(ctx context.Context, id int, params UpdatePageParams) (*Page, error) {
	body := createPageBody{
		Title:   params.Title,
		Content: params.Content,
		Slug:    params.Slug,
		Status:  params.Status,
		Parent:  params.ParentID,
		Excerpt: params.Excerpt,
	}

	var page Page
	if err := c.post(ctx, fmt.Sprintf("/pages/%d", id), body, &page); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("wordpress: update page %d", id))
	}
	return &page, nil
}

func (c *httpClient) GetPage(ctx context.Context, id int) (*Page, error) {
	var page Page
	err := c.get(ctx, fmt.Sprintf("/pages/%d", id), nil, &page)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("wordpress: get page %d", id))
	}
	return &page, nil
}

func (c *httpClient) GetPageBySlug(ctx context.Context, slug string) (*Page, error) {
	var pages []Page
	err := c.get(ctx, "/pages", url.Values{"slug": {slug}}, &pages)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("wordpress: get page by slug %s", slug))
	}
	if len(pages) == 0 {
		return nil, nil
	}
	return &pages[0], nil
}

func (c *httpClient) DeletePage(ctx context.Context, id int, force bool) error {
	q := url.Values{}
	if force {
		q.Set("force", "true")
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/pages/%d", id), q, nil, nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("wordpress: delete page %d", id))
	}
	return nil
}

// PublishPage flips a page to publish status. Alias for an update with
// status=publish.
func (c *httpClient) PublishPage(ctx context.Context, id int) (*Page, error) {
	return c.UpdatePage(ctx, id, UpdatePageParams{Status: "publish"})
}

// TestConnection probes the API root. Errors are swallowed; the probe is
// a boolean health signal only.
func (c *httpClient) TestConnection(ctx context.Context) bool {
	err := c.get(ctx, "", nil, &json.RawMessage{})
	return err == nil
}

func (c *httpClient) GetCategories(ctx context.Context) ([]Term, error) {
	var terms []Term
	if err := c.get(ctx, "/categories", url.Values{"per_page": {"100"}}, &terms); err != nil {
		return nil, eris.Wrap(err, "wordpress: get categories")
	}
	return terms, nil
}

func (c *httpClient) CreateCategory(ctx context.Context, name, description string) (*Term, error) {
	var term Term
	body := map[string]string{"name": name, "description": description}
	if err := c.post(ctx, "/categories", body, &term); err != nil {
		return nil, eris.Wrap(err, "wordpress: create category")
	}
	return &term, nil
}

func (c *httpClient) GetTags(ctx context.Context) ([]Term, error) {
	var terms []Term
	if err := c.get(ctx, "/tags", url.Values{"per_page": {"100"}}, &terms); err != nil {
		return nil, eris.Wrap(err, "wordpress: get tags")
	}
	return terms, nil
}

func (c *httpClient) CreateTag(ctx context.Context, name, description string) (*Term, error) {
	var term Term
	body := map[string]string{"name": name, "description": description}
	if err := c.post(ctx, "/tags", body, &term); err != nil {
		return nil, eris.Wrap(err, "wordpress: create tag")
	}
	return &term, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *httpClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "rate limit")
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "marshal request")
		}
		reader = bytes.NewReader(buf)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return eris.Wrap(err, "decode response")
		}
	}

	return nil
}

// decodeAPIError maps a WordPress error body ({code, message}) into an
// APIError, falling back to the raw body when it isn't JSON.
func decodeAPIError(status int, data []byte) *APIError {
	var wpErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &wpErr); err == nil && wpErr.Message != "" {
		return &APIError{StatusCode: status, Code: wpErr.Code, Message: wpErr.Message}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(data))}
}

// isNotFound reports whether err is an APIError with status 404 anywhere
// in its chain.
func isNotFound(err error) bool {
	var apiErr *APIError
	return eris.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
