// Package client is a typed HTTP client for the Paratus API. Query results are
// cached by query key; every mutation drops the keys the server lists in the
// X-Invalidate-Queries header.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/domain/views"
	"github.com/paratus/tasks/internal/ports"
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one API base URL, e.g. http://localhost:8080/api/v1.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[invalidation.QueryKey][]byte
}

// New creates a client. A zero timeout leaves requests bounded only by their
// context.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a client using hc for transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		cache:      make(map[invalidation.QueryKey][]byte),
	}
}

// Cached reports whether a result for key is held.
func (c *Client) Cached(key invalidation.QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.cache[key]
	return ok
}

// Invalidate drops the given keys from the cache.
func (c *Client) Invalidate(keys ...invalidation.QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.cache, k)
	}
}

// Queries

func (c *Client) Collections(ctx context.Context) ([]entities.CollectionSummary, error) {
	var out []entities.CollectionSummary
	err := c.query(ctx, invalidation.QueryKey{Procedure: invalidation.CollectionReadAll}, "/collections", &out)
	return out, err
}

func (c *Client) Inbox(ctx context.Context) (*entities.CollectionSummary, error) {
	var out entities.CollectionSummary
	if err := c.query(ctx, invalidation.QueryKey{Procedure: invalidation.CollectionInbox}, "/collections/inbox", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Collection(ctx context.Context, id string) (*entities.CollectionDetail, error) {
	var out entities.CollectionDetail
	key := invalidation.QueryKey{Procedure: invalidation.CollectionReadOne, Param: id}
	if err := c.query(ctx, key, "/collections/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Task(ctx context.Context, id string) (*entities.TaskDetail, error) {
	var out entities.TaskDetail
	key := invalidation.QueryKey{Procedure: invalidation.TaskReadOne, Param: id}
	if err := c.query(ctx, key, "/tasks/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Today(ctx context.Context) (*entities.ViewCollection, error) {
	var out entities.ViewCollection
	if err := c.query(ctx, invalidation.QueryKey{Procedure: invalidation.TaskToday}, "/tasks/today", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Upcoming(ctx context.Context) (*entities.ViewCollection, error) {
	var out entities.ViewCollection
	if err := c.query(ctx, invalidation.QueryKey{Procedure: invalidation.TaskUpcoming}, "/tasks/upcoming", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuickPicks depends on the current date and is never cached.
func (c *Client) QuickPicks(ctx context.Context) ([]views.QuickPick, error) {
	var out []views.QuickPick
	_, err := c.do(ctx, http.MethodGet, "/dates/quick-picks", nil, &out)
	return out, err
}

// Collection mutations

func (c *Client) InitializeCollections(ctx context.Context) (*entities.Collection, error) {
	return mutateInto[entities.Collection](ctx, c, http.MethodPost, "/collections/initialize", nil)
}

func (c *Client) CreateCollection(ctx context.Context, req ports.CreateCollectionRequest) (*entities.Collection, error) {
	return mutateInto[entities.Collection](ctx, c, http.MethodPost, "/collections", req)
}

func (c *Client) UpdateCollection(ctx context.Context, id string, req ports.UpdateCollectionRequest) (*entities.Collection, error) {
	return mutateInto[entities.Collection](ctx, c, http.MethodPut, "/collections/"+url.PathEscape(id), req)
}

func (c *Client) DeleteCollection(ctx context.Context, id string) (*entities.Collection, error) {
	return mutateInto[entities.Collection](ctx, c, http.MethodDelete, "/collections/"+url.PathEscape(id), nil)
}

func (c *Client) ReorderCollections(ctx context.Context, items []ports.ReorderEntry) error {
	return c.mutate(ctx, http.MethodPut, "/collections/reorder", items, nil)
}

// Section mutations

func (c *Client) CreateSection(ctx context.Context, req ports.CreateSectionRequest) (*entities.Section, error) {
	return mutateInto[entities.Section](ctx, c, http.MethodPost, "/sections", req)
}

func (c *Client) UpdateSection(ctx context.Context, id string, req ports.UpdateSectionRequest) (*entities.Section, error) {
	return mutateInto[entities.Section](ctx, c, http.MethodPut, "/sections/"+url.PathEscape(id), req)
}

func (c *Client) DeleteSection(ctx context.Context, id string) (*entities.Section, error) {
	return mutateInto[entities.Section](ctx, c, http.MethodDelete, "/sections/"+url.PathEscape(id), nil)
}

func (c *Client) ReorderSections(ctx context.Context, items []ports.ReorderEntry) error {
	return c.mutate(ctx, http.MethodPut, "/sections/reorder", items, nil)
}

// Task mutations

func (c *Client) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	return mutateInto[entities.Task](ctx, c, http.MethodPost, "/tasks", req)
}

func (c *Client) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	return mutateInto[entities.Task](ctx, c, http.MethodPut, "/tasks/"+url.PathEscape(id), req)
}

func (c *Client) DeleteTask(ctx context.Context, id string) (*entities.Task, error) {
	return mutateInto[entities.Task](ctx, c, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil)
}

func (c *Client) ReorderTasks(ctx context.Context, items []ports.ReorderEntry) error {
	return c.mutate(ctx, http.MethodPut, "/tasks/reorder", items, nil)
}

// Comment and checklist mutations

func (c *Client) CreateComment(ctx context.Context, req ports.CreateCommentRequest) (*entities.Comment, error) {
	return mutateInto[entities.Comment](ctx, c, http.MethodPost, "/comments", req)
}

func (c *Client) UpdateComment(ctx context.Context, id string, req ports.UpdateCommentRequest) (*entities.Comment, error) {
	return mutateInto[entities.Comment](ctx, c, http.MethodPut, "/comments/"+url.PathEscape(id), req)
}

func (c *Client) DeleteComment(ctx context.Context, id string) (*entities.Comment, error) {
	return mutateInto[entities.Comment](ctx, c, http.MethodDelete, "/comments/"+url.PathEscape(id), nil)
}

func (c *Client) CreateChecklistItem(ctx context.Context, req ports.CreateChecklistItemRequest) (*entities.ChecklistItem, error) {
	return mutateInto[entities.ChecklistItem](ctx, c, http.MethodPost, "/checklist-items", req)
}

func (c *Client) UpdateChecklistItem(ctx context.Context, id string, req ports.UpdateChecklistItemRequest) (*entities.ChecklistItem, error) {
	return mutateInto[entities.ChecklistItem](ctx, c, http.MethodPut, "/checklist-items/"+url.PathEscape(id), req)
}

func (c *Client) DeleteChecklistItem(ctx context.Context, id string) (*entities.ChecklistItem, error) {
	return mutateInto[entities.ChecklistItem](ctx, c, http.MethodDelete, "/checklist-items/"+url.PathEscape(id), nil)
}

func (c *Client) ReorderChecklistItems(ctx context.Context, items []ports.ReorderEntry) error {
	return c.mutate(ctx, http.MethodPut, "/checklist-items/reorder", items, nil)
}

// query serves key from the cache or fetches path and caches the body.
func (c *Client) query(ctx context.Context, key invalidation.QueryKey, path string, out interface{}) error {
	c.mu.Lock()
	body, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return json.Unmarshal(body, out)
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil, out)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cache[key] = resp.body
	c.mu.Unlock()
	return nil
}

// mutate sends a write and drops the invalidated keys, even when out cannot
// be decoded.
func (c *Client) mutate(ctx context.Context, method, path string, in, out interface{}) error {
	resp, err := c.do(ctx, method, path, in, out)
	if resp != nil {
		c.Invalidate(invalidation.ParseHeader(resp.header.Get(invalidation.HeaderName))...)
	}
	return err
}

func mutateInto[T any](ctx context.Context, c *Client, method, path string, in interface{}) (*T, error) {
	var out T
	if err := c.mutate(ctx, method, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type response struct {
	header http.Header
	body   []byte
}

// do performs one request. The response is returned for every 2xx status.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) (*response, error) {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: httpResp.StatusCode, Message: http.StatusText(httpResp.StatusCode)}
		var payload struct {
			Message string `json:"message"`
			Details string `json:"details"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Details = payload.Details
		}
		return nil, apiErr
	}

	resp := &response{header: httpResp.Header, body: body}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp, nil
}
