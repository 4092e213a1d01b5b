package admin

import (
	"context"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
)

// Workspace composes one resource's workflow: the list controller, its
// sibling create form, the edit/delete session slot, and the debounced
// search. The TUI renders a workspace per resource; the CLI drives the same
// pieces without a screen.
type Workspace struct {
	Schema  *Schema
	List    *ListController[api.Record]
	Form    *FormController
	Session *SessionManager
	Search  *Debounce

	client *api.Client
}

// NewWorkspace wires a schema to the shared API client.
func NewWorkspace(client *api.Client, schema *Schema, pageSize int) *Workspace {
	res := schema.Resource

	list := NewListController(func(ctx context.Context, page, pageSize int, filters map[string]string) (*api.Page[api.Record], error) {
		return api.List[api.Record](ctx, client, res, api.ListParams{
			Page:     page,
			PageSize: pageSize,
			Filters:  filters,
		})
	}, pageSize)

	form := NewFormController(schema, list, func(ctx context.Context, payload map[string]any) (api.Record, error) {
		return api.Create[api.Record](ctx, client, res, payload)
	})

	session := NewSessionManager(schema, list,
		func(ctx context.Context, id string, partial map[string]any) (api.Record, error) {
			return api.Update[api.Record](ctx, client, res, id, partial)
		},
		func(ctx context.Context, id string) error {
			return client.Delete(ctx, res, id)
		},
	)

	return &Workspace{
		Schema:  schema,
		List:    list,
		Form:    form,
		Session: session,
		Search:  NewDebounce(0, 0),
		client:  client,
	}
}

// ApplySearch pushes the search term server-side through the list filters
// and resets to page 1. An empty term clears the filter.
func (w *Workspace) ApplySearch(ctx context.Context, term string) error {
	if term == "" {
		return w.List.SetFilters(ctx, nil)
	}
	return w.List.SetFilters(ctx, map[string]string{"search": term})
}

// LookupOptions fetches the first page of a referenced collection for a
// FieldRef dropdown. A draft value pointing at a record outside this page is
// preserved by the form, not reset.
func (w *Workspace) LookupOptions(ctx context.Context, ref api.ResourceType, pageSize int) ([]api.Record, error) {
	page, err := api.List[api.Record](ctx, w.client, ref, api.ListParams{Page: 1, PageSize: pageSize})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
