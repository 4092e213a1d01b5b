// Package api implements the client for the vivla-guides REST backend.
//
// Every resource type shares the same envelope:
//
//	{ "success": bool, "data": ..., "meta": {page, pageSize, total, totalPages}, "error": "..." }
//
// The client holds no session state beyond its base URL and is safe to share;
// construct one at startup and pass it by reference.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/logging"
)

// Client talks to the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) {
		c.log = log.Component("api")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListParams are the pagination and filter parameters for List.
type ListParams struct {
	Page     int
	PageSize int
	// Filters are serialized to query parameters and applied server-side.
	// Foreign-key scoped lists (rooms by home, guides by room) are plain
	// filters: {"home_id": "..."}.
	Filters map[string]string
}

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// List fetches one page of a resource collection.
func List[T any](ctx context.Context, c *Client, res ResourceType, p ListParams) (*Page[T], error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	// Deterministic order keeps request logs and test assertions stable.
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, p.Filters[k])
	}

	env, err := c.do(ctx, http.MethodGet, string(res)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.NewFetchError(string(res), err)
	}

	var items []T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, errors.NewFetchError(string(res), err)
		}
	}

	page := &Page[T]{
		Items:    items,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if env.Meta != nil {
		page.Page = env.Meta.Page
		page.PageSize = env.Meta.PageSize
		page.Total = env.Meta.Total
		page.TotalPages = env.Meta.TotalPages
	}
	return page, nil
}

// GetByID fetches a single record.
func GetByID[T any](ctx context.Context, c *Client, res ResourceType, id string) (T, error) {
	var out T
	env, err := c.do(ctx, http.MethodGet, string(res)+"/"+url.PathEscape(id), nil)
	if err != nil {
		return out, errors.NewFetchError(string(res), err)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, errors.NewFetchError(string(res), err)
	}
	return out, nil
}

// Create posts a new record. The backend assigns the identifier.
func Create[T any](ctx context.Context, c *Client, res ResourceType, payload any) (T, error) {
	var out T
	env, err := c.do(ctx, http.MethodPost, string(res), payload)
	if err != nil {
		return out, errors.NewSubmissionError(string(res), err)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, errors.NewSubmissionError(string(res), err)
	}
	return out, nil
}

// Update patches a record with only the provided fields. Fields absent from
// the partial payload keep their server-side values.
func Update[T any](ctx context.Context, c *Client, res ResourceType, id string, partial map[string]any) (T, error) {
	var out T
	env, err := c.do(ctx, http.MethodPatch, string(res)+"/"+url.PathEscape(id), partial)
	if err != nil {
		return out, errors.NewSubmissionError(string(res), err)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, errors.NewSubmissionError(string(res), err)
	}
	return out, nil
}

// Delete removes a record. Irreversible.
func (c *Client) Delete(ctx context.Context, res ResourceType, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, string(res)+"/"+url.PathEscape(id), nil); err != nil {
		return errors.NewDeletionError(string(res), id, err)
	}
	return nil
}

// do issues one request and unwraps the envelope. A response with
// success=false is an error even on HTTP 200.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var respBody io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		respBody = gz
	}

	var env envelope
	if err := json.NewDecoder(respBody).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response (%s): %w", resp.Status, err)
	}

	c.log.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("backend rejected %s %s: %s", method, path, msg)
	}
	return &env, nil
}
