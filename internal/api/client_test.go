package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

func respond(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestListParsesEnvelopeAndMeta(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/homes" {
			t.Errorf("expected path /homes, got %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		respond(t, w, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "h-1", "name": "Villa Mar"},
				{"id": "h-2", "name": "Villa Sol"},
			},
			"meta": map[string]any{"page": 2, "pageSize": 10, "total": 23, "totalPages": 3},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := List[Record](context.Background(), client, ResourceHomes, ListParams{
		Page:     2,
		PageSize: 10,
		Filters:  map[string]string{"search": "villa", "destination": "ibiza"},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Page != 2 || page.Total != 23 || page.TotalPages != 3 {
		t.Errorf("meta not applied: page=%d total=%d totalPages=%d", page.Page, page.Total, page.TotalPages)
	}

	// Filter keys are emitted in sorted order after the pagination params.
	expected := "destination=ibiza&page=2&pageSize=10&search=villa"
	if gotQuery != expected {
		t.Errorf("expected query %q, got %q", expected, gotQuery)
	}
}

func TestListClampsPageParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "1" {
			t.Errorf("expected page clamped to 1, got %s", got)
		}
		if got := r.URL.Query().Get("pageSize"); got != "1" {
			t.Errorf("expected pageSize clamped to 1, got %s", got)
		}
		respond(t, w, map[string]any{"success": true, "data": []any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := List[Record](context.Background(), client, ResourceHomes, ListParams{Page: -3, PageSize: 0}); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestListErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, map[string]any{"success": false, "error": "database unavailable"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := List[Record](context.Background(), client, ResourceRooms, ListParams{Page: 1, PageSize: 10})
	if err == nil {
		t.Fatal("expected an error for success=false")
	}
	if !errors.IsFetch(err) {
		t.Errorf("expected a fetch error, got: %v", err)
	}
}

func TestListDecodesGzipResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Encoding") != "gzip" {
			t.Errorf("expected Accept-Encoding gzip, got %q", r.Header.Get("Accept-Encoding"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		json.NewEncoder(gz).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "a-1", "name": "Pool"}},
			"meta":    map[string]any{"page": 1, "pageSize": 10, "total": 1, "totalPages": 1},
		})
	}))
	defer server.Close()

	// httptest's default transport would decode transparently; disable that so
	// the client's own gzip path is exercised.
	hc := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	client := NewClient(server.URL, WithHTTPClient(hc))

	page, err := List[Amenity](context.Background(), client, ResourceAmenities, ListParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Pool" {
		t.Fatalf("unexpected items: %+v", page.Items)
	}
}

func TestCreatePostsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/suppliers" {
			t.Errorf("expected path /suppliers, got %s", r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Acme" {
			t.Errorf("expected name Acme, got %v", body["name"])
		}
		respond(t, w, map[string]any{
			"success": true,
			"data":    map[string]any{"id": "s-9", "name": "Acme"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rec, err := Create[Supplier](context.Background(), client, ResourceSuppliers, map[string]any{"name": "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != "s-9" {
		t.Errorf("expected id s-9, got %s", rec.ID)
	}
}

func TestUpdateSendsOnlyPartialFields(t *testing.T) {
	// Given an update touching a single field
	// When the client patches the record
	// Then the request body contains exactly that field
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/homes/h-1" {
			t.Errorf("expected path /homes/h-1, got %s", r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if len(body) != 1 {
			t.Errorf("expected exactly 1 field in the partial payload, got %d: %v", len(body), body)
		}
		if body["name"] != "Villa Nueva" {
			t.Errorf("expected name 'Villa Nueva', got %v", body["name"])
		}
		respond(t, w, map[string]any{
			"success": true,
			"data":    map[string]any{"id": "h-1", "name": "Villa Nueva", "destination": "ibiza"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rec, err := Update[Home](context.Background(), client, ResourceHomes, "h-1", map[string]any{"name": "Villa Nueva"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Destination != "ibiza" {
		t.Errorf("expected destination from server, got %q", rec.Destination)
	}
}

func TestUpdateBackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		respond(t, w, map[string]any{"success": false, "error": "name already taken"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := Update[Home](context.Background(), client, ResourceHomes, "h-1", map[string]any{"name": "dup"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsSubmission(err) {
		t.Errorf("expected a submission error, got: %v", err)
	}
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/brands/b-1" {
			t.Errorf("expected path /brands/b-1, got %s", r.URL.Path)
		}
		respond(t, w, map[string]any{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.Delete(context.Background(), ResourceBrands, "b-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDeleteFailureIsDeletionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, map[string]any{"success": false, "error": "referenced by inventory"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Delete(context.Background(), ResourceBrands, "b-1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsDeletion(err) {
		t.Errorf("expected a deletion error, got: %v", err)
	}
}

func TestGetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rooms/r-7" {
			t.Errorf("expected path /rooms/r-7, got %s", r.URL.Path)
		}
		respond(t, w, map[string]any{
			"success": true,
			"data":    map[string]any{"id": "r-7", "name": "Master bedroom", "home_id": "h-1"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	room, err := GetByID[Room](context.Background(), client, ResourceRooms, "r-7")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if room.Name != "Master bedroom" || room.HomeID != "h-1" {
		t.Errorf("unexpected room: %+v", room)
	}
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		name     string
		rec      Record
		expected string
	}{
		{"string id", Record{"id": "x-1"}, "x-1"},
		{"numeric id", Record{"id": float64(42)}, "42"},
		{"missing id", Record{"name": "n"}, ""},
		{"nil record", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecordID(tt.rec); got != tt.expected {
				t.Errorf("RecordID() = %q, want %q", got, tt.expected)
			}
		})
	}
}
