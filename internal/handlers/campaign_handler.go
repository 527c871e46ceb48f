// internal/handlers/campaign_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type CampaignHandler struct {
	repo      interfaces.CampaignRepository
	validator *validator.Validate
}

func NewCampaignHandler(repo interfaces.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

// CreateCampaign handles POST /api/v1/campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	campaign := &models.Campaign{
		Name:      req.Name,
		Status:    models.CampaignStatusDraft,
		Platforms: req.Platforms,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Budget:    req.Budget,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.repo.Create(r.Context(), campaign); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusConflict, "duplicate_campaign", "Campaign already exists")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "create_campaign_failed", "Failed to create campaign")
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// GetCampaign handles GET /api/v1/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Campaign ID is required")
		return
	}

	campaign, err := h.repo.GetByID(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "campaign not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to fetch campaign")
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// ListCampaigns handles GET /api/v1/campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.CampaignFilter{
		Status:   r.URL.Query().Get("status"),
		Platform: r.URL.Query().Get("platform"),
		Limit:    100, // default cap to keep responses bounded
	}

	campaigns, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	if campaigns == nil {
		campaigns = []*models.Campaign{} // return empty array instead of null
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// GetSummary handles GET /api/v1/campaigns/summary
func (h *CampaignHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.repo.Summary(r.Context(), interfaces.CampaignFilter{})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "summary_failed", "Failed to compute summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// UpdateCampaign handles PUT /api/v1/campaigns/{id}
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Campaign ID is required")
		return
	}

	var req models.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "campaign not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to get campaign")
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Status != nil {
		existing.Status = models.CampaignStatus(*req.Status)
	}
	if req.Platforms != nil {
		existing.Platforms = *req.Platforms
	}
	if req.StartDate != nil {
		existing.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		existing.EndDate = *req.EndDate
	}
	if req.Budget != nil {
		existing.Budget = *req.Budget
	}

	if err := h.repo.Update(r.Context(), id, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "campaign not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "update_campaign_failed", "Failed to update campaign")
		return
	}

	writeJSON(w, http.StatusOK, existing)
}

// DeleteCampaign handles DELETE /api/v1/campaigns/{id}
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Campaign ID is required")
		return
	}

	if err := h.repo.Delete(r.Context(), campaignID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "campaign not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "delete_campaign_failed", "Failed to delete campaign")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "campaign deleted successfully",
		"id":      campaignID,
	})
}
