// internal/interfaces/campaign_agent.go
package interfaces

import (
	"context"
	"encoding/json"

	"adpulse/internal/models"
)

// CampaignAgent is the external service that owns scheduling and
// effectiveness evaluation. Results are raw JSON so handlers can hand the
// agent's response back to the caller untouched.
type CampaignAgent interface {
	ScheduleCampaign(ctx context.Context, input models.ScheduleCampaignInput) (json.RawMessage, error)
	EvaluateCampaignEffectiveness(ctx context.Context, campaignID string) (json.RawMessage, error)
}
