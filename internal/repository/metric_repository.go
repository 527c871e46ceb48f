package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type metricRepository struct {
	db *sql.DB
}

func NewMetricRepository(db *sql.DB) interfaces.MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) Insert(ctx context.Context, metric *models.CampaignMetric) error {
	query := `
        INSERT INTO campaign_metrics (
            campaign_id, metric_date, impressions, clicks, conversions, spend, revenue
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (campaign_id, metric_date) DO UPDATE
        SET impressions = EXCLUDED.impressions,
            clicks = EXCLUDED.clicks,
            conversions = EXCLUDED.conversions,
            spend = EXCLUDED.spend,
            revenue = EXCLUDED.revenue
        RETURNING id, created_at
    `

	return r.db.QueryRowContext(
		ctx,
		query,
		metric.CampaignID,
		metric.MetricDate,
		metric.Impressions,
		metric.Clicks,
		metric.Conversions,
		metric.Spend,
		metric.Revenue,
	).Scan(&metric.ID, &metric.CreatedAt)
}

func (r *metricRepository) Totals(ctx context.Context, campaignID string, from, to time.Time) (*models.CampaignMetric, error) {
	query := `
        SELECT
            COALESCE(SUM(impressions), 0) AS impressions,
            COALESCE(SUM(clicks), 0) AS clicks,
            COALESCE(SUM(conversions), 0) AS conversions,
            COALESCE(SUM(spend), 0) AS spend,
            COALESCE(SUM(revenue), 0) AS revenue
        FROM campaign_metrics
        WHERE campaign_id = $1
          AND metric_date >= $2
          AND metric_date <= $3
    `

	totals := models.CampaignMetric{CampaignID: campaignID, MetricDate: from}
	err := r.db.QueryRowContext(ctx, query, campaignID, from, to).Scan(
		&totals.Impressions,
		&totals.Clicks,
		&totals.Conversions,
		&totals.Spend,
		&totals.Revenue,
	)
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

// seriesExpr whitelists the metric names a time series can be requested
// for. Derived ratios guard divide-by-zero with NULLIF and come back as 0.
var seriesExpr = map[string]string{
	"impressions": "impressions::float8",
	"clicks":      "clicks::float8",
	"conversions": "conversions::float8",
	"spend":       "spend::float8",
	"revenue":     "revenue::float8",
	"ctr":         "COALESCE(clicks::float8 / NULLIF(impressions, 0), 0)",
	"cpc":         "COALESCE(spend / NULLIF(clicks, 0), 0)",
	"cpa":         "COALESCE(spend / NULLIF(conversions, 0), 0)",
	"roi":         "COALESCE((revenue - spend) / NULLIF(spend, 0), 0)",
	"roas":        "COALESCE(revenue / NULLIF(spend, 0), 0)",
}

func (r *metricRepository) Series(ctx context.Context, campaignID string, metric string, from, to time.Time) ([]models.TimeSeriesData, error) {
	expr, ok := seriesExpr[metric]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", metric)
	}

	query := fmt.Sprintf(`
        SELECT metric_date, %s AS value
        FROM campaign_metrics
        WHERE campaign_id = $1
          AND metric_date >= $2
          AND metric_date <= $3
        ORDER BY metric_date ASC
    `, expr)

	rows, err := r.db.QueryContext(ctx, query, campaignID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []models.TimeSeriesData
	for rows.Next() {
		point := models.TimeSeriesData{Metric: metric}
		if err := rows.Scan(&point.Timestamp, &point.Value); err != nil {
			return nil, err
		}
		series = append(series, point)
	}

	return series, rows.Err()
}

func (r *metricRepository) ListDaily(ctx context.Context, campaignID string, from, to time.Time) ([]*models.CampaignMetric, error) {
	query := `
        SELECT
            id, campaign_id, metric_date, impressions, clicks, conversions,
            spend, revenue, created_at
        FROM campaign_metrics
        WHERE campaign_id = $1
          AND metric_date >= $2
          AND metric_date <= $3
        ORDER BY metric_date ASC
    `

	rows, err := r.db.QueryContext(ctx, query, campaignID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []*models.CampaignMetric
	for rows.Next() {
		var m models.CampaignMetric
		err := rows.Scan(
			&m.ID,
			&m.CampaignID,
			&m.MetricDate,
			&m.Impressions,
			&m.Clicks,
			&m.Conversions,
			&m.Spend,
			&m.Revenue,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, &m)
	}

	return metrics, rows.Err()
}
