// Package admin implements the reusable list/form/session workflow every
// resource screen is built from: a paginated list controller, a validated
// create form, and a single-slot edit/delete session.
package admin

import (
	"context"
	"sync"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
)

// Loader fetches one page of records. The API client satisfies it via a
// closure over the resource type.
type Loader[T any] func(ctx context.Context, page, pageSize int, filters map[string]string) (*api.Page[T], error)

// ListController owns pagination state for one resource collection and
// re-fetches on demand. Methods are safe to call from fetch goroutines;
// responses that raced with a newer request are discarded instead of
// overwriting fresher data.
type ListController[T any] struct {
	mu     sync.Mutex
	loader Loader[T]

	page     int
	pageSize int
	filters  map[string]string

	items      []T
	total      int
	totalPages int

	loading bool
	err     error

	// gen tags each fetch with the request state it was issued for.
	gen uint64
}

// NewListController creates a controller starting at page 1.
func NewListController[T any](loader Loader[T], pageSize int) *ListController[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &ListController[T]{
		loader:   loader,
		page:     1,
		pageSize: pageSize,
	}
}

// ListState is a snapshot of the controller for rendering.
type ListState[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	Loading    bool
	Err        error
}

// State returns a consistent snapshot.
func (c *ListController[T]) State() ListState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ListState[T]{
		Items:      c.items,
		Page:       c.page,
		PageSize:   c.pageSize,
		Total:      c.total,
		TotalPages: c.totalPages,
		Loading:    c.loading,
		Err:        c.err,
	}
}

// Page returns the current page number.
func (c *ListController[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Len returns the number of rows currently held.
func (c *ListController[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Load fetches the page the controller currently points at. On success the
// held page is replaced wholesale. On failure the stale rows stay visible and
// only the error flag changes. A response that arrives after a newer Load was
// issued is dropped.
func (c *ListController[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	page, pageSize := c.page, c.pageSize
	filters := c.filters
	c.loading = true
	c.mu.Unlock()

	result, err := c.loader(ctx, page, pageSize, filters)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Superseded while in flight; the newer request owns the state now.
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	c.err = nil
	c.items = result.Items
	c.total = result.Total
	c.totalPages = result.TotalPages
	if result.Page > 0 {
		c.page = result.Page
	}
	// The collection may have shrunk under us; never stay pointed past the
	// last page.
	if max := maxPage(c.totalPages); c.page > max {
		c.page = max
	}
	return nil
}

// SetPage clamps n into [1, max(1, totalPages)] and loads it.
func (c *ListController[T]) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 {
		n = 1
	}
	if max := maxPage(c.totalPages); n > max {
		n = max
	}
	c.page = n
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetPageSize changes the page size and resets to page 1, so a shorter list
// cannot leave the controller on an out-of-range page.
func (c *ListController[T]) SetPageSize(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 {
		n = 1
	}
	c.pageSize = n
	c.page = 1
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetFilters replaces the server-side filters and resets to page 1.
func (c *ListController[T]) SetFilters(ctx context.Context, filters map[string]string) error {
	c.mu.Lock()
	c.filters = filters
	c.page = 1
	c.mu.Unlock()
	return c.Load(ctx)
}

// Reload re-issues the fetch with the current parameters. Used after every
// commit so local state is rebuilt from the backend, never patched.
func (c *ListController[T]) Reload(ctx context.Context) error {
	return c.Load(ctx)
}

// ReloadAt reloads at an explicit page: page 1 after a create (newest-first
// backends surface the new record there), page-1 after deleting the last row
// of a later page.
func (c *ListController[T]) ReloadAt(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	c.page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

func maxPage(totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	return totalPages
}
