// internal/handlers/agent_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// AgentHandler exposes the two pass-through operations backed by the
// external campaign agent. It validates input shape and dispatches; it has
// no business logic of its own and returns the agent's response verbatim.
type AgentHandler struct {
	agent     interfaces.CampaignAgent
	validator *validator.Validate
}

func NewAgentHandler(agent interfaces.CampaignAgent) *AgentHandler {
	return &AgentHandler{
		agent:     agent,
		validator: validator.New(),
	}
}

// ScheduleCampaign handles POST /api/v1/campaigns/schedule
// @Tags Agent
// @Summary Schedule a campaign via the campaign agent
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body models.ScheduleCampaignInput true "Campaign to schedule"
// @Success 200 {object} object "Agent-defined result"
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/campaigns/schedule [post]
func (h *AgentHandler) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
	var input models.ScheduleCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validator.Struct(input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.agent.ScheduleCampaign(r.Context(), input)
	if err != nil {
		// Agent failures are handed back as-is, no local recovery.
		writeJSONError(w, http.StatusBadGateway, "agent_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}

// EvaluateCampaign handles POST /api/v1/campaigns/evaluate
// @Tags Agent
// @Summary Evaluate campaign effectiveness via the campaign agent
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body models.EvaluateCampaignInput true "Campaign to evaluate"
// @Success 200 {object} object "Agent-defined result"
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/campaigns/evaluate [post]
func (h *AgentHandler) EvaluateCampaign(w http.ResponseWriter, r *http.Request) {
	var input models.EvaluateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validator.Struct(input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.agent.EvaluateCampaignEffectiveness(r.Context(), input.ID)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, "agent_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}
