// internal/handlers/metrics_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"adpulse/internal/analytics"
	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// MetricsHandler serves metric ingestion and the derived analytics read
// models (performance analysis, time series, health score,
// recommendations, thresholds).
type MetricsHandler struct {
	campaigns  interfaces.CampaignRepository
	metrics    interfaces.MetricRepository
	exporter   interfaces.ReportExporter
	thresholds models.PerformanceThresholds
	validator  *validator.Validate
}

func NewMetricsHandler(campaigns interfaces.CampaignRepository, metrics interfaces.MetricRepository, exporter interfaces.ReportExporter) *MetricsHandler {
	return &MetricsHandler{
		campaigns:  campaigns,
		metrics:    metrics,
		exporter:   exporter,
		thresholds: models.DefaultThresholds(),
		validator:  validator.New(),
	}
}

// period parses from/to query params (YYYY-MM-DD); defaults to the last 30
// days ending today.
func period(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	from := now.AddDate(0, 0, -30)
	to := now

	if q := r.URL.Query().Get("from"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		from = t
	}
	if q := r.URL.Query().Get("to"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		to = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to must not be before from")
	}
	return from, to, nil
}

func (h *MetricsHandler) campaign(w http.ResponseWriter, r *http.Request) (*models.Campaign, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Campaign ID is required")
		return nil, false
	}

	campaign, err := h.campaigns.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "campaign not found")
			return nil, false
		}
		writeJSONError(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to fetch campaign")
		return nil, false
	}
	return campaign, true
}

// RecordMetric handles POST /api/v1/campaigns/{id}/metrics
func (h *MetricsHandler) RecordMetric(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.campaign(w, r)
	if !ok {
		return
	}

	var req models.RecordMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	metric := &models.CampaignMetric{
		CampaignID:  campaign.ID,
		MetricDate:  req.MetricDate,
		Impressions: req.Impressions,
		Clicks:      req.Clicks,
		Conversions: req.Conversions,
		Spend:       req.Spend,
		Revenue:     req.Revenue,
	}
	if err := h.metrics.Insert(r.Context(), metric); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "record_metric_failed", "Failed to record metric")
		return
	}

	writeJSON(w, http.StatusCreated, analytics.WithCalculated(*metric))
}

func (h *MetricsHandler) analysisFor(w http.ResponseWriter, r *http.Request) (*models.CampaignPerformanceAnalysis, *models.Campaign, bool) {
	campaign, ok := h.campaign(w, r)
	if !ok {
		return nil, nil, false
	}

	from, to, err := period(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return nil, nil, false
	}

	totals, err := h.metrics.Totals(r.Context(), campaign.ID, from, to)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "analysis_failed", "Failed to aggregate metrics")
		return nil, nil, false
	}

	summary := analytics.WithCalculated(*totals)
	analysis := &models.CampaignPerformanceAnalysis{
		CampaignID:  campaign.ID,
		PeriodStart: from,
		PeriodEnd:   to,
		Summary:     summary,
		Insights:    analytics.Insights(summary, h.thresholds),
		Anomalies:   analytics.DetectAnomalies(summary, h.thresholds),
	}
	return analysis, campaign, true
}

// GetPerformance handles GET /api/v1/campaigns/{id}/performance
func (h *MetricsHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	analysis, _, ok := h.analysisFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// ExportPerformance handles POST /api/v1/campaigns/{id}/performance/export
func (h *MetricsHandler) ExportPerformance(w http.ResponseWriter, r *http.Request) {
	analysis, _, ok := h.analysisFor(w, r)
	if !ok {
		return
	}

	key, err := h.exporter.ExportAnalysis(r.Context(), analysis)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "export_failed", "Failed to export report: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}

// GetTimeSeries handles GET /api/v1/campaigns/{id}/timeseries
func (h *MetricsHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.campaign(w, r)
	if !ok {
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "ctr"
	}

	from, to, err := period(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	series, err := h.metrics.Series(r.Context(), campaign.ID, metric, from, to)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_metric", err.Error())
		return
	}

	if series == nil {
		series = []models.TimeSeriesData{}
	}
	writeJSON(w, http.StatusOK, series)
}

// GetHealthScore handles GET /api/v1/campaigns/{id}/health
func (h *MetricsHandler) GetHealthScore(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.campaign(w, r)
	if !ok {
		return
	}

	from, to, err := period(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	totals, err := h.metrics.Totals(r.Context(), campaign.ID, from, to)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "health_failed", "Failed to aggregate metrics")
		return
	}

	daily, err := h.metrics.ListDaily(r.Context(), campaign.ID, from, to)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "health_failed", "Failed to load daily metrics")
		return
	}

	summary := analytics.WithCalculated(*totals)
	score := analytics.HealthScore(campaign.ID, summary, campaign.Budget, daily, h.thresholds)
	writeJSON(w, http.StatusOK, score)
}

// GetRecommendations handles GET /api/v1/campaigns/{id}/recommendations
func (h *MetricsHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.campaign(w, r)
	if !ok {
		return
	}

	from, to, err := period(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	totals, err := h.metrics.Totals(r.Context(), campaign.ID, from, to)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "recommendations_failed", "Failed to aggregate metrics")
		return
	}

	summary := analytics.WithCalculated(*totals)
	recs := analytics.Recommend(summary, campaign.Budget, h.thresholds)
	writeJSON(w, http.StatusOK, recs)
}

// GetThresholds handles GET /api/v1/analytics/thresholds
func (h *MetricsHandler) GetThresholds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.thresholds)
}
