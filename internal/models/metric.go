// internal/models/metric.go
package models

import "time"

// CampaignMetric is one day of raw counters for a campaign.
type CampaignMetric struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	MetricDate  time.Time `json:"metric_date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Conversions int64     `json:"conversions"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
	CreatedAt   time.Time `json:"created_at"`
}

// CampaignMetricWithCalculated carries the raw counters plus the derived
// ratios. The ratio fields are plain floats, never pointers: whoever builds
// this shape must populate all five (zero denominators yield 0).
type CampaignMetricWithCalculated struct {
	CampaignMetric
	CTR  float64 `json:"ctr"`
	CPC  float64 `json:"cpc"`
	CPA  float64 `json:"cpa"`
	ROI  float64 `json:"roi"`
	ROAS float64 `json:"roas"`
}

type RecordMetricRequest struct {
	MetricDate  time.Time `json:"metric_date" validate:"required"`
	Impressions int64     `json:"impressions" validate:"gte=0"`
	Clicks      int64     `json:"clicks" validate:"gte=0"`
	Conversions int64     `json:"conversions" validate:"gte=0"`
	Spend       float64   `json:"spend" validate:"gte=0"`
	Revenue     float64   `json:"revenue" validate:"gte=0"`
}

type AnomalySeverity string

const (
	SeverityLow    AnomalySeverity = "low"
	SeverityMedium AnomalySeverity = "medium"
	SeverityHigh   AnomalySeverity = "high"
)

// PerformanceAnomaly is one detected deviation of a metric from its
// expected band.
type PerformanceAnomaly struct {
	Metric      string          `json:"metric"`
	Value       float64         `json:"value"`
	Expected    float64         `json:"expected"`
	Deviation   float64         `json:"deviation"`
	Severity    AnomalySeverity `json:"severity"`
	Description string          `json:"description"`
}

// CampaignPerformanceAnalysis is the read model returned for a campaign
// over a period.
type CampaignPerformanceAnalysis struct {
	CampaignID  string                       `json:"campaign_id"`
	PeriodStart time.Time                    `json:"period_start"`
	PeriodEnd   time.Time                    `json:"period_end"`
	Summary     CampaignMetricWithCalculated `json:"summary"`
	Insights    []string                     `json:"insights"`
	Anomalies   []PerformanceAnomaly         `json:"anomalies"`
}

type RecommendationType string

const (
	RecommendationBudget    RecommendationType = "budget"
	RecommendationTargeting RecommendationType = "targeting"
	RecommendationCreative  RecommendationType = "creative"
	RecommendationBidding   RecommendationType = "bidding"
)

type EffortTier string

const (
	EffortLow    EffortTier = "low"
	EffortMedium EffortTier = "medium"
	EffortHigh   EffortTier = "high"
)

type OptimizationRecommendation struct {
	Type            RecommendationType `json:"type"`
	Priority        EffortTier         `json:"priority"`
	EstimatedEffort EffortTier         `json:"estimated_effort"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Impact          string             `json:"impact"`
	ActionItems     []string           `json:"action_items"`
}

type HealthTrend string

const (
	TrendImproving HealthTrend = "improving"
	TrendStable    HealthTrend = "stable"
	TrendDeclining HealthTrend = "declining"
)

type HealthBreakdown struct {
	CTR   float64 `json:"ctr"`
	CPA   float64 `json:"cpa"`
	ROI   float64 `json:"roi"`
	Spend float64 `json:"spend"`
}

// CampaignHealthScore is a 0-100 rollup of a campaign's recent performance.
type CampaignHealthScore struct {
	CampaignID string          `json:"campaign_id"`
	Overall    float64         `json:"overall"`
	Breakdown  HealthBreakdown `json:"breakdown"`
	Trend      HealthTrend     `json:"trend"`
}

// TimeSeriesData is a single sample of one metric.
type TimeSeriesData struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Metric    string    `json:"metric"`
}
