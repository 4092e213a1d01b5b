// Package storage implements the client side of the file storage service:
// batch uploads that report per-file outcomes, and best-effort deletion of
// orphaned assets.
package storage

import (
	"context"
	"fmt"

	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

// File is one binary asset to upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult is the outcome for one file of a batch. A batch where some
// results carry URLs and others carry errors is a partial success; the
// caller decides whether to proceed with the subset or abort.
type UploadResult struct {
	Name string
	URL  string
	Err  error
}

// Service is the storage contract the admin workflow consumes.
type Service interface {
	// UploadMany uploads the files under destPath and returns one result per
	// file, in order. The returned error is non-nil only when the whole
	// batch failed before any per-file outcome existed.
	UploadMany(ctx context.Context, files []File, destPath string) ([]UploadResult, error)

	// DeleteMany removes uploaded assets by URL. Best effort: failures are
	// logged, not returned, since leftover objects waste storage but never
	// corrupt record data.
	DeleteMany(ctx context.Context, urls []string)
}

// Limits are enforced client-side before any byte is sent.
type Limits struct {
	MaxFileSize  int64
	AllowedTypes []string
}

// DefaultLimits mirror what the backend will accept anyway; rejecting early
// saves the round trip.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize: 10 << 20, // 10 MiB
		AllowedTypes: []string{
			"image/jpeg",
			"image/png",
			"image/webp",
			"application/pdf",
		},
	}
}

// Validate checks every file against the limits and returns field-style
// errors keyed by filename. Runs before upload is attempted.
func (l Limits) Validate(files []File) error {
	var errs []error
	for _, f := range files {
		if l.MaxFileSize > 0 && int64(len(f.Data)) > l.MaxFileSize {
			errs = append(errs, errors.NewUploadError(f.Name,
				fmt.Errorf("exceeds the %d byte limit", l.MaxFileSize)))
			continue
		}
		if len(l.AllowedTypes) > 0 && !l.allows(f.ContentType) {
			errs = append(errs, errors.NewUploadError(f.Name,
				fmt.Errorf("type %q is not allowed", f.ContentType)))
		}
	}
	return errors.Join(errs...)
}

func (l Limits) allows(contentType string) bool {
	for _, t := range l.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
