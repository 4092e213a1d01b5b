package admin

import (
	"context"
	"sync"
	"testing"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

// formFixture wires a form to a fake backend holding a newest-first list.
type formFixture struct {
	loader *fakeLoader
	list   *ListController[api.Record]
	form   *FormController

	mu       sync.Mutex
	created  []map[string]any
	createFn CreateFunc
}

func newFormFixture(t *testing.T, schema *Schema, existing int) *formFixture {
	t.Helper()
	f := &formFixture{loader: newFakeLoader(existing)}
	f.list = NewListController(f.loader.load, 10)

	create := func(ctx context.Context, payload map[string]any) (api.Record, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.createFn != nil {
			return f.createFn(ctx, payload)
		}
		f.created = append(f.created, payload)
		rec := api.Record{"id": "new-1"}
		for k, v := range payload {
			rec[k] = v
		}
		// Newest first, like the backend.
		f.loader.records = append([]api.Record{rec}, f.loader.records...)
		return rec, nil
	}

	f.form = NewFormController(schema, f.list, create)
	return f
}

func TestFormValidation(t *testing.T) {
	schema := SupplierSchema()

	tests := []struct {
		name          string
		fields        map[string]string
		expectedError map[string]bool // fields expected to fail
	}{
		{
			name:          "missing required name",
			fields:        map[string]string{},
			expectedError: map[string]bool{"name": true},
		},
		{
			name:          "invalid email",
			fields:        map[string]string{"name": "Acme", "contact_email": "not-an-email"},
			expectedError: map[string]bool{"contact_email": true},
		},
		{
			name:          "invalid website",
			fields:        map[string]string{"name": "Acme", "website": "not a url"},
			expectedError: map[string]bool{"website": true},
		},
		{
			name:   "valid draft",
			fields: map[string]string{"name": "Acme", "contact_email": "sales@acme.test", "website": "https://acme.test"},
		},
		{
			name:   "optional fields may be empty",
			fields: map[string]string{"name": "Acme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFormFixture(t, schema, 0)
			for k, v := range tt.fields {
				fx.form.SetField(k, v)
			}

			errs := fx.form.Validate()
			if len(tt.expectedError) == 0 {
				if errs != nil {
					t.Fatalf("expected a valid draft, got: %v", errs)
				}
				return
			}
			if errs == nil {
				t.Fatalf("expected validation to fail for %v", tt.expectedError)
			}
			for field := range tt.expectedError {
				if _, ok := errs[field]; !ok {
					t.Errorf("expected an error on %q, got: %v", field, errs)
				}
			}
		})
	}
}

func TestNumericValidationBounds(t *testing.T) {
	schema := HomeInventorySchema()

	tests := []struct {
		name     string
		quantity string
		valid    bool
	}{
		{"quantity one is the minimum", "1", true},
		{"zero quantity rejected", "0", false},
		{"negative rejected", "-2", false},
		{"fraction rejected", "1.5", false},
		{"large fine", "500", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFormFixture(t, schema, 0)
			fx.form.SetField("name", "Wine glasses")
			fx.form.SetField("home_id", "h-1")
			fx.form.SetField("quantity", tt.quantity)

			errs := fx.form.Validate()
			if tt.valid && errs != nil {
				t.Errorf("expected valid, got: %v", errs)
			}
			if !tt.valid {
				if errs == nil {
					t.Fatal("expected validation failure")
				}
				if _, ok := errs["quantity"]; !ok {
					t.Errorf("expected the quantity error, got: %v", errs)
				}
			}
		})
	}
}

func TestSubmitCreatesAndReloadsAtPageOne(t *testing.T) {
	// Given a list sitting on page 3
	fx := newFormFixture(t, HomeSchema(), 25)
	ctx := context.Background()
	fx.list.Load(ctx)
	fx.list.SetPage(ctx, 3)

	// When a valid draft is submitted
	fx.form.SetField("name", "Villa A")
	fx.form.SetField("destination", "Menorca")
	fx.form.SetField("address", "Camí Vell 3")

	rec, err := fx.form.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.RecordID(rec) != "new-1" {
		t.Errorf("expected created record back, got: %v", rec)
	}

	// Then the list shows page 1 with the new record first
	state := fx.list.State()
	if state.Page != 1 {
		t.Errorf("expected reload at page 1, got %d", state.Page)
	}
	if len(state.Items) == 0 || state.Items[0]["name"] != "Villa A" {
		t.Errorf("expected 'Villa A' first on page 1, got: %v", state.Items)
	}

	// And the draft is cleared for the next create
	if got := fx.form.Draft().String("name"); got != "" {
		t.Errorf("expected a fresh draft, got name=%q", got)
	}
}

func TestSubmitInvalidDraftNeverCallsBackend(t *testing.T) {
	fx := newFormFixture(t, HomeSchema(), 0)

	_, err := fx.form.Submit(context.Background())
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.IsValidation(err) {
		t.Errorf("expected a validation error, got: %v", err)
	}
	if len(fx.created) != 0 {
		t.Errorf("expected no backend call, got %d", len(fx.created))
	}
}

func TestSubmitFailureRetainsDraft(t *testing.T) {
	fx := newFormFixture(t, HomeSchema(), 0)
	fx.createFn = func(ctx context.Context, payload map[string]any) (api.Record, error) {
		return nil, errors.NewSubmissionError("homes", errors.New("backend rejected"))
	}

	fx.form.SetField("name", "Villa B")
	fx.form.SetField("destination", "Mallorca")
	fx.form.SetField("address", "Passeig 1")

	if _, err := fx.form.Submit(context.Background()); err == nil {
		t.Fatal("expected submission failure")
	}

	if got := fx.form.Draft().String("name"); got != "Villa B" {
		t.Errorf("expected the draft preserved after failure, got name=%q", got)
	}
	if fx.form.Err() == nil {
		t.Error("expected the submission error retained")
	}
}

func TestSubmitSingleInFlight(t *testing.T) {
	fx := newFormFixture(t, HomeSchema(), 0)

	started := make(chan struct{})
	release := make(chan struct{})
	fx.createFn = func(ctx context.Context, payload map[string]any) (api.Record, error) {
		close(started)
		<-release
		return api.Record{"id": "slow-1"}, nil
	}

	fx.form.SetField("name", "Villa C")
	fx.form.SetField("destination", "Ibiza")
	fx.form.SetField("address", "Carrer 9")

	done := make(chan error, 1)
	go func() {
		_, err := fx.form.Submit(context.Background())
		done <- err
	}()

	<-started
	// A second save while the first is in flight is a no-op, not a queue.
	if _, err := fx.form.Submit(context.Background()); !errors.Is(err, ErrSubmitPending) {
		t.Errorf("expected ErrSubmitPending, got: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestDiscardReturnsStagedUploads(t *testing.T) {
	fx := newFormFixture(t, HomeSchema(), 0)

	fx.form.SetField("name", "Villa D")
	fx.form.StageUploads("image_urls", []string{
		"https://bucket.test/homes/a.jpg",
		"https://bucket.test/homes/b.jpg",
	})

	if got := fx.form.Draft().Strings("image_urls"); len(got) != 2 {
		t.Fatalf("expected 2 staged urls in the draft, got %d", len(got))
	}

	orphaned := fx.form.Discard()
	if len(orphaned) != 2 {
		t.Errorf("expected 2 orphaned urls for cleanup, got %d", len(orphaned))
	}
	if got := fx.form.Draft().String("name"); got != "" {
		t.Errorf("expected the draft cleared, got name=%q", got)
	}
	if len(fx.form.StagedUploads()) != 0 {
		t.Error("expected staged uploads cleared")
	}
}

func TestDiscardRefusedWhileSubmitInFlight(t *testing.T) {
	// Given a submit blocked in flight with a staged upload in its payload
	fx := newFormFixture(t, HomeSchema(), 0)
	started := make(chan struct{})
	release := make(chan struct{})
	var sent map[string]any
	fx.createFn = func(ctx context.Context, payload map[string]any) (api.Record, error) {
		close(started)
		<-release
		sent = payload
		return api.Record{"id": "new-1"}, nil
	}

	fx.form.SetField("name", "Villa F")
	fx.form.SetField("destination", "Ibiza")
	fx.form.SetField("address", "Carrer 4")
	fx.form.StageUploads("image_urls", []string{"https://bucket.test/homes/a.jpg"})

	done := make(chan error, 1)
	go func() {
		_, err := fx.form.Submit(context.Background())
		done <- err
	}()

	// When the form is discarded before the submit resolves
	<-started
	if orphans := fx.form.Discard(); len(orphans) != 0 {
		t.Errorf("expected no urls released while the submit may still commit them, got: %v", orphans)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Then the committed record kept its staged url
	urls, ok := sent["image_urls"].([]string)
	if !ok || len(urls) != 1 || urls[0] != "https://bucket.test/homes/a.jpg" {
		t.Errorf("expected the staged url committed with the record, got: %v", sent["image_urls"])
	}
	if len(fx.form.StagedUploads()) != 0 {
		t.Error("expected staged uploads cleared once the submit resolved")
	}
}

func TestStagedUploadsClearedOnSuccess(t *testing.T) {
	fx := newFormFixture(t, HomeSchema(), 0)
	ctx := context.Background()

	fx.form.SetField("name", "Villa E")
	fx.form.SetField("destination", "Formentera")
	fx.form.SetField("address", "Camí 2")
	fx.form.StageUploads("image_urls", []string{"https://bucket.test/homes/c.jpg"})

	if _, err := fx.form.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(fx.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(fx.created))
	}
	urls, ok := fx.created[0]["image_urls"].([]string)
	if !ok || len(urls) != 1 {
		t.Errorf("expected the staged url in the payload, got: %v", fx.created[0]["image_urls"])
	}
	if len(fx.form.StagedUploads()) != 0 {
		t.Error("expected staged uploads cleared after success")
	}
}
