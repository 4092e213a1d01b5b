package admin

import (
	"context"
	"sync"
	"testing"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

// fakeLoader serves pages from an in-memory dataset, mimicking the backend's
// pagination math.
type fakeLoader struct {
	mu      sync.Mutex
	records []api.Record
	calls   int
	failing bool

	lastPage     int
	lastPageSize int
	lastFilters  map[string]string
}

func newFakeLoader(n int) *fakeLoader {
	f := &fakeLoader{}
	for i := 0; i < n; i++ {
		f.records = append(f.records, api.Record{
			"id":   "rec-" + string(rune('a'+i%26)) + string(rune('0'+i/26)),
			"name": "Record",
		})
	}
	return f
}

func (f *fakeLoader) load(ctx context.Context, page, pageSize int, filters map[string]string) (*api.Page[api.Record], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastPage = page
	f.lastPageSize = pageSize
	f.lastFilters = filters

	if f.failing {
		return nil, errors.NewFetchError("test", errors.New("backend down"))
	}

	total := len(f.records)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &api.Page[api.Record]{
		Items:      f.records[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func TestListControllerLoadsFirstPage(t *testing.T) {
	loader := newFakeLoader(23)
	c := NewListController(loader.load, 10)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	state := c.State()
	if state.Page != 1 || len(state.Items) != 10 {
		t.Errorf("expected page 1 with 10 items, got page %d with %d", state.Page, len(state.Items))
	}
	if state.Total != 23 || state.TotalPages != 3 {
		t.Errorf("expected total 23 over 3 pages, got %d over %d", state.Total, state.TotalPages)
	}
}

func TestListControllerPageBounds(t *testing.T) {
	// 23 records at 10 per page: exactly 3 pages, the last one short.
	loader := newFakeLoader(23)
	c := NewListController(loader.load, 10)
	ctx := context.Background()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name         string
		request      int
		expectedPage int
		expectedLen  int
	}{
		{"last page is short", 3, 3, 3},
		{"past the end clamps to last", 99, 3, 3},
		{"below one clamps to first", -1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.SetPage(ctx, tt.request); err != nil {
				t.Fatalf("SetPage: %v", err)
			}
			state := c.State()
			if state.Page != tt.expectedPage {
				t.Errorf("expected page %d, got %d", tt.expectedPage, state.Page)
			}
			if len(state.Items) != tt.expectedLen {
				t.Errorf("expected %d items, got %d", tt.expectedLen, len(state.Items))
			}
		})
	}
}

func TestListControllerPageSizeChangeResetsToFirstPage(t *testing.T) {
	loader := newFakeLoader(23)
	c := NewListController(loader.load, 10)
	ctx := context.Background()

	c.Load(ctx)
	c.SetPage(ctx, 3)

	if err := c.SetPageSize(ctx, 25); err != nil {
		t.Fatalf("SetPageSize: %v", err)
	}

	state := c.State()
	if state.Page != 1 {
		t.Errorf("expected reset to page 1, got %d", state.Page)
	}
	if state.PageSize != 25 {
		t.Errorf("expected page size 25, got %d", state.PageSize)
	}
	if len(state.Items) != 23 {
		t.Errorf("expected all 23 items on one page, got %d", len(state.Items))
	}
}

func TestListControllerFailureKeepsStaleRows(t *testing.T) {
	// Given a successfully loaded page
	loader := newFakeLoader(5)
	c := NewListController(loader.load, 10)
	ctx := context.Background()
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// When the next reload fails
	loader.failing = true
	if err := c.Reload(ctx); err == nil {
		t.Fatal("expected reload to fail")
	}

	// Then the stale rows stay visible alongside the error
	state := c.State()
	if len(state.Items) != 5 {
		t.Errorf("expected 5 stale rows retained, got %d", len(state.Items))
	}
	if state.Err == nil {
		t.Error("expected error flag set")
	}
	if !errors.IsFetch(state.Err) {
		t.Errorf("expected a fetch error, got: %v", state.Err)
	}

	// And a subsequent success clears the error
	loader.failing = false
	if err := c.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if c.State().Err != nil {
		t.Errorf("expected error cleared, got: %v", c.State().Err)
	}
}

func TestListControllerDiscardsStaleResponse(t *testing.T) {
	// Two loads race: the first one's response must not overwrite the second.
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	loader := func(ctx context.Context, page, pageSize int, filters map[string]string) (*api.Page[api.Record], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstStarted)
			<-release
			return &api.Page[api.Record]{
				Items:      []api.Record{{"id": "stale"}},
				Page:       page,
				Total:      1,
				TotalPages: 1,
			}, nil
		}
		return &api.Page[api.Record]{
			Items:      []api.Record{{"id": "fresh"}},
			Page:       page,
			Total:      1,
			TotalPages: 1,
		}, nil
	}

	c := NewListController(loader, 10)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Load(ctx)
	}()

	<-firstStarted
	if err := c.Load(ctx); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	close(release)
	<-done

	items := c.State().Items
	if len(items) != 1 || api.RecordID(items[0]) != "fresh" {
		t.Errorf("expected the fresh response to win, got: %v", items)
	}
}

func TestListControllerFiltersResetPage(t *testing.T) {
	loader := newFakeLoader(23)
	c := NewListController(loader.load, 10)
	ctx := context.Background()

	c.Load(ctx)
	c.SetPage(ctx, 3)

	if err := c.SetFilters(ctx, map[string]string{"search": "villa"}); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}

	if c.State().Page != 1 {
		t.Errorf("expected filters to reset to page 1, got %d", c.State().Page)
	}
	if loader.lastFilters["search"] != "villa" {
		t.Errorf("expected the filter passed through, got: %v", loader.lastFilters)
	}
}
