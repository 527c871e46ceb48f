// internal/interfaces/metric_repository.go
package interfaces

import (
	"context"
	"time"

	"adpulse/internal/models"
)

// MetricRepository stores and aggregates daily campaign metric samples.
type MetricRepository interface {
	Insert(ctx context.Context, metric *models.CampaignMetric) error
	// Totals sums the raw counters for a campaign between from and to
	// (inclusive). A campaign with no samples yields all-zero totals.
	Totals(ctx context.Context, campaignID string, from, to time.Time) (*models.CampaignMetric, error)
	// Series returns one point per day for the named metric, ordered by
	// date ascending. Derived metrics (ctr, cpc, cpa, roi, roas) are
	// computed per day in SQL.
	Series(ctx context.Context, campaignID string, metric string, from, to time.Time) ([]models.TimeSeriesData, error)
	// ListDaily returns the raw daily rows for a campaign in the period,
	// ordered by date ascending.
	ListDaily(ctx context.Context, campaignID string, from, to time.Time) ([]*models.CampaignMetric, error)
}
