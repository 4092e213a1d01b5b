package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/logging"
)

// BucketClient talks to an HTTP object bucket: PUT uploads an object and
// returns its public URL, DELETE removes one. It enforces Limits before
// uploading.
type BucketClient struct {
	endpoint   string
	httpClient *http.Client
	limits     Limits
	log        *logging.Logger
}

// BucketOption configures a BucketClient.
type BucketOption func(*BucketClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) BucketOption {
	return func(b *BucketClient) {
		b.httpClient = hc
	}
}

// WithLimits overrides the upload limits.
func WithLimits(l Limits) BucketOption {
	return func(b *BucketClient) {
		b.limits = l
	}
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) BucketOption {
	return func(b *BucketClient) {
		b.log = log.Component("storage")
	}
}

// NewBucketClient creates a storage client for the given bucket endpoint.
func NewBucketClient(endpoint string, opts ...BucketOption) *BucketClient {
	b := &BucketClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limits: DefaultLimits(),
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Limits returns the enforced upload limits.
func (b *BucketClient) Limits() Limits {
	return b.limits
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadMany uploads the files one by one under destPath. Object names get a
// random suffix so repeated uploads of the same filename never collide. The
// batch keeps going past individual failures; each file's outcome lands in
// its result slot.
func (b *BucketClient) UploadMany(ctx context.Context, files []File, destPath string) ([]UploadResult, error) {
	if err := b.limits.Validate(files); err != nil {
		return nil, err
	}

	results := make([]UploadResult, len(files))
	for i, f := range files {
		results[i].Name = f.Name
		objectURL, err := b.upload(ctx, f, destPath)
		if err != nil {
			results[i].Err = err
			b.log.Warn("upload failed", "file", f.Name, "error", err)
			continue
		}
		results[i].URL = objectURL
	}
	return results, nil
}

func (b *BucketClient) upload(ctx context.Context, f File, destPath string) (string, error) {
	objectName := uuid.NewString() + path.Ext(f.Name)
	target := b.endpoint + "/" + strings.Trim(destPath, "/") + "/" + objectName

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(f.Data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", f.ContentType)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("bucket returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err == nil && ur.URL != "" {
		return ur.URL, nil
	}
	// Buckets without a JSON body answer with the object at the request URL.
	return target, nil
}

// DeleteMany removes assets by URL, best effort.
func (b *BucketClient) DeleteMany(ctx context.Context, urls []string) {
	for _, u := range urls {
		if _, err := url.Parse(u); err != nil {
			b.log.Warn("skipping malformed asset url", "url", u)
			continue
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
		if err != nil {
			b.log.Warn("delete request failed", "url", u, "error", err)
			continue
		}
		resp, err := b.httpClient.Do(req)
		if err != nil {
			b.log.Warn("asset delete failed", "url", u, "error", err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			b.log.Warn("asset delete rejected", "url", u, "status", resp.StatusCode)
		}
	}
}
