// internal/models/campaign.go
package models

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

type Campaign struct {
	ID        string         `json:"id"`
	Name      string         `json:"name" validate:"required"`
	Status    CampaignStatus `json:"status"`
	Platforms []string       `json:"platforms"`
	StartDate time.Time      `json:"start_date" validate:"required"`
	EndDate   time.Time      `json:"end_date" validate:"required,gtfield=StartDate"`
	Budget    float64        `json:"budget" validate:"required,gt=0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Name      string    `json:"name" validate:"required"`
	Platforms []string  `json:"platforms"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	Budget    float64   `json:"budget" validate:"required,gt=0"`
}

type UpdateCampaignRequest struct {
	Name      *string    `json:"name,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled active paused completed"`
	Platforms *[]string  `json:"platforms,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" validate:"omitempty,gtfield=StartDate"`
	Budget    *float64   `json:"budget,omitempty" validate:"omitempty,gt=0"`
}

// ScheduleCampaignInput is forwarded to the campaign agent exactly as
// received; the platforms list may be empty.
type ScheduleCampaignInput struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Platforms []string `json:"platforms"`
}

type EvaluateCampaignInput struct {
	ID string `json:"id" validate:"required"`
}

type CampaignSummary struct {
	ActiveCampaignCount int     `json:"active_campaign_count"`
	TotalBudget         float64 `json:"total_budget"`
	TotalSpend          float64 `json:"total_spend"`
}
