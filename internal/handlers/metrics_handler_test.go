package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type mockCampaignRepo struct {
	campaign *models.Campaign
}

var _ interfaces.CampaignRepository = (*mockCampaignRepo)(nil)

func (m *mockCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error { return nil }
func (m *mockCampaignRepo) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	if m.campaign != nil && m.campaign.ID == id {
		return m.campaign, nil
	}
	return nil, sql.ErrNoRows
}
func (m *mockCampaignRepo) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	return []*models.Campaign{}, nil
}
func (m *mockCampaignRepo) Summary(ctx context.Context, filter interfaces.CampaignFilter) (*models.CampaignSummary, error) {
	return &models.CampaignSummary{}, nil
}
func (m *mockCampaignRepo) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	return nil
}
func (m *mockCampaignRepo) Delete(ctx context.Context, id string) error { return nil }

type mockMetricRepo struct {
	totals   models.CampaignMetric
	daily    []*models.CampaignMetric
	series   []models.TimeSeriesData
	inserted []*models.CampaignMetric
}

var _ interfaces.MetricRepository = (*mockMetricRepo)(nil)

func (m *mockMetricRepo) Insert(ctx context.Context, metric *models.CampaignMetric) error {
	metric.ID = "m1"
	metric.CreatedAt = time.Now().UTC()
	m.inserted = append(m.inserted, metric)
	return nil
}
func (m *mockMetricRepo) Totals(ctx context.Context, campaignID string, from, to time.Time) (*models.CampaignMetric, error) {
	t := m.totals
	t.CampaignID = campaignID
	return &t, nil
}
func (m *mockMetricRepo) Series(ctx context.Context, campaignID string, metric string, from, to time.Time) ([]models.TimeSeriesData, error) {
	return m.series, nil
}
func (m *mockMetricRepo) ListDaily(ctx context.Context, campaignID string, from, to time.Time) ([]*models.CampaignMetric, error) {
	return m.daily, nil
}

type mockExporter struct {
	exported []*models.CampaignPerformanceAnalysis
}

func (m *mockExporter) ExportAnalysis(ctx context.Context, analysis *models.CampaignPerformanceAnalysis) (string, error) {
	m.exported = append(m.exported, analysis)
	return "reports/c1/test.json", nil
}

func testCampaign() *models.Campaign {
	return &models.Campaign{
		ID:        "c1",
		Name:      "Spring Sale",
		Status:    models.CampaignStatusActive,
		Platforms: []string{"meta", "google"},
		Budget:    1000,
	}
}

func newMetricsRouter(campaigns *mockCampaignRepo, metrics *mockMetricRepo, exporter *mockExporter) *chi.Mux {
	h := NewMetricsHandler(campaigns, metrics, exporter)
	r := chi.NewRouter()
	r.Get("/analytics/thresholds", h.GetThresholds)
	r.Route("/campaigns/{id}", func(r chi.Router) {
		r.Post("/metrics", h.RecordMetric)
		r.Get("/performance", h.GetPerformance)
		r.Post("/performance/export", h.ExportPerformance)
		r.Get("/timeseries", h.GetTimeSeries)
		r.Get("/health", h.GetHealthScore)
		r.Get("/recommendations", h.GetRecommendations)
	})
	return r
}

func TestGetPerformanceReturnsCalculatedSummary(t *testing.T) {
	metrics := &mockMetricRepo{totals: models.CampaignMetric{
		Impressions: 10000,
		Clicks:      200,
		Conversions: 10,
		Spend:       400,
		Revenue:     1000,
	}}
	r := newMetricsRouter(&mockCampaignRepo{campaign: testCampaign()}, metrics, &mockExporter{})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/c1/performance?from=2025-06-01&to=2025-06-30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var analysis models.CampaignPerformanceAnalysis
	if err := json.Unmarshal(w.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if analysis.CampaignID != "c1" {
		t.Errorf("campaign_id = %q", analysis.CampaignID)
	}
	if analysis.Summary.CTR != 0.02 || analysis.Summary.CPC != 2 || analysis.Summary.CPA != 40 {
		t.Errorf("calculated summary wrong: %+v", analysis.Summary)
	}
	if analysis.Summary.ROI != 1.5 || analysis.Summary.ROAS != 2.5 {
		t.Errorf("calculated summary wrong: %+v", analysis.Summary)
	}
	if len(analysis.Insights) == 0 {
		t.Errorf("expected insights, got none")
	}
	if len(analysis.Anomalies) != 0 {
		t.Errorf("healthy campaign should have no anomalies: %+v", analysis.Anomalies)
	}
}

func TestGetPerformanceUnknownCampaign(t *testing.T) {
	r := newMetricsRouter(&mockCampaignRepo{}, &mockMetricRepo{}, &mockExporter{})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/missing/performance", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestGetPerformanceRejectsBadPeriod(t *testing.T) {
	r := newMetricsRouter(&mockCampaignRepo{campaign: testCampaign()}, &mockMetricRepo{}, &mockExporter{})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/c1/performance?from=2025-06-30&to=2025-06-01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRecordMetricReturnsCalculatedShape(t *testing.T) {
	metrics := &mockMetricRepo{}
	r := newMetricsRouter(&mockCampaignRepo{campaign: testCampaign()}, metrics, &mockExporter{})

	body := `{"metric_date":"2025-06-10T00:00:00Z","impressions":5000,"clicks":100,"conversions":4,"spend":200,"revenue":600}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/c1/metrics", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	if len(metrics.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(metrics.inserted))
	}

	var resp models.CampaignMetricWithCalculated
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.CTR != 0.02 || resp.CPC != 2 || resp.CPA != 50 || resp.ROI != 2 || resp.ROAS != 3 {
		t.Fatalf("calculated fields missing or wrong: %+v", resp)
	}
}

func TestRecordMetricRejectsNegativeCounts(t *testing.T) {
	metrics := &mockMetricRepo{}
	r := newMetricsRouter(&mockCampaignRepo{campaign: testCampaign()}, metrics, &mockExporter{})

	body := `{"metric_date":"2025-06-10T00:00:00Z","impressions":-5,"clicks":0}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns/c1/metrics", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	if len(metrics.inserted) != 0 {
		t.Fatalf("invalid metric must not be stored")
	}
}

func TestGetThresholdsReturnsDefaults(t *testing.T) {
	r := newMetricsRouter(&mockCampaignRepo{}, &mockMetricRepo{}, &mockExporter{})

	req := httptest.NewRequest(http.MethodGet, "/analytics/thresholds", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var th models.PerformanceThresholds
	if err := json.Unmarshal(w.Body.Bytes(), &th); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if th != models.DefaultThresholds() {
		t.Fatalf("thresholds = %+v, want defaults", th)
	}
}

func TestExportPerformanceUploadsAnalysis(t *testing.T) {
	exporter := &mockExporter{}
	metrics := &mockMetricRepo{totals: models.CampaignMetric{Impressions: 100, Clicks: 2}}
	r := newMetricsRouter(&mockCampaignRepo{campaign: testCampaign()}, metrics, exporter)

	req := httptest.NewRequest(http.MethodPost, "/campaigns/c1/performance/export?from=2025-06-01&to=2025-06-30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if len(exporter.exported) != 1 {
		t.Fatalf("expected 1 export, got %d", len(exporter.exported))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["key"] == "" {
		t.Fatalf("expected object key in response, got %v", resp)
	}
}

func TestGetHealthScore(t *testing.T) {
	metrics := &mockMetricRepo{totals: models.CampaignMetric{
		Impressions: 10000,
		Clicks:      200,
		Conversions: 10,
		Spend:       300,
		Revenue:     900,
	}}
	r := newMetricsRouter(&mockCampaignRepo{campaign: testCampaign()}, metrics, &mockExporter{})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/c1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var score models.CampaignHealthScore
	if err := json.Unmarshal(w.Body.Bytes(), &score); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if score.Overall != 100 {
		t.Errorf("overall = %v, want 100 for a healthy campaign", score.Overall)
	}
	if score.Trend != models.TrendStable {
		t.Errorf("trend = %v, want stable", score.Trend)
	}
}
