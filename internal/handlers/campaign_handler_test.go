package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestGetCampaignNotFoundReturnsJSON(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignRepo{})
	r := chi.NewRouter()
	r.Get("/campaigns/{id}", h.GetCampaign)

	req := httptest.NewRequest(http.MethodGet, "/campaigns/c1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] == nil {
		t.Fatalf("expected error field, got %v", resp)
	}
}

func TestListCampaignsReturnsEmptyArray(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignRepo{})
	r := chi.NewRouter()
	r.Get("/campaigns", h.ListCampaigns)

	req := httptest.NewRequest(http.MethodGet, "/campaigns", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignRepo{})
	r := chi.NewRouter()
	r.Post("/campaigns", h.CreateCampaign)

	// Missing name and budget, end before start.
	body := `{"platforms":["meta"],"start_date":"2025-06-10T00:00:00Z","end_date":"2025-06-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "validation_error" {
		t.Fatalf("expected validation_error, got %v", resp)
	}
}

func TestCreateCampaignSucceeds(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignRepo{})
	r := chi.NewRouter()
	r.Post("/campaigns", h.CreateCampaign)

	body := `{"name":"Spring Sale","platforms":["meta","google"],"start_date":"2025-06-01T00:00:00Z","end_date":"2025-06-30T00:00:00Z","budget":1000}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "draft" {
		t.Fatalf("expected new campaign in draft status, got %v", resp)
	}
}
