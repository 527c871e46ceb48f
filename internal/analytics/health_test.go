package analytics

import (
	"testing"
	"time"

	"adpulse/internal/models"
)

func day(d int, spend, revenue float64) *models.CampaignMetric {
	return &models.CampaignMetric{
		MetricDate: time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC),
		Spend:      spend,
		Revenue:    revenue,
	}
}

func TestHealthScoreHealthyCampaign(t *testing.T) {
	summary := WithCalculated(models.CampaignMetric{
		Impressions: 10000,
		Clicks:      200,
		Conversions: 10,
		Spend:       300,
		Revenue:     900,
	})

	score := HealthScore("c1", summary, 1000, nil, models.DefaultThresholds())

	if score.CampaignID != "c1" {
		t.Errorf("campaign id = %q", score.CampaignID)
	}
	if score.Overall != 100 {
		t.Errorf("overall = %v, want 100", score.Overall)
	}
	if score.Breakdown.CTR != 100 || score.Breakdown.CPA != 100 || score.Breakdown.ROI != 100 || score.Breakdown.Spend != 100 {
		t.Errorf("breakdown = %+v, want all 100", score.Breakdown)
	}
	if score.Trend != models.TrendStable {
		t.Errorf("trend = %v, want stable with no daily data", score.Trend)
	}
}

func TestHealthScoreBounded(t *testing.T) {
	// Everything terrible: no clicks, massive overspend, negative return.
	summary := WithCalculated(models.CampaignMetric{
		Impressions: 100000,
		Clicks:      10,
		Conversions: 1,
		Spend:       5000,
		Revenue:     100,
	})

	score := HealthScore("c1", summary, 1000, nil, models.DefaultThresholds())

	for name, v := range map[string]float64{
		"overall": score.Overall,
		"ctr":     score.Breakdown.CTR,
		"cpa":     score.Breakdown.CPA,
		"roi":     score.Breakdown.ROI,
		"spend":   score.Breakdown.Spend,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s score %v out of [0,100]", name, v)
		}
	}
	if score.Overall >= 50 {
		t.Errorf("overall = %v, expected a poor score", score.Overall)
	}
}

func TestTrendClassification(t *testing.T) {
	improving := []*models.CampaignMetric{
		day(1, 100, 100), day(2, 100, 110),
		day(3, 100, 200), day(4, 100, 220),
	}
	declining := []*models.CampaignMetric{
		day(1, 100, 300), day(2, 100, 280),
		day(3, 100, 120), day(4, 100, 110),
	}
	flat := []*models.CampaignMetric{
		day(1, 100, 200), day(2, 100, 200),
		day(3, 100, 201), day(4, 100, 199),
	}

	if got := trend(improving); got != models.TrendImproving {
		t.Errorf("trend = %v, want improving", got)
	}
	if got := trend(declining); got != models.TrendDeclining {
		t.Errorf("trend = %v, want declining", got)
	}
	if got := trend(flat); got != models.TrendStable {
		t.Errorf("trend = %v, want stable", got)
	}
}

func TestRecommendHealthyCampaignIsEmpty(t *testing.T) {
	summary := WithCalculated(models.CampaignMetric{
		Impressions: 10000,
		Clicks:      200,
		Conversions: 10,
		Spend:       300,
		Revenue:     900,
	})

	if recs := Recommend(summary, 1000, models.DefaultThresholds()); len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %+v", recs)
	}
}

func TestRecommendFlagsBreaches(t *testing.T) {
	// Low CTR, expensive conversions, spend over budget.
	summary := WithCalculated(models.CampaignMetric{
		Impressions: 100000,
		Clicks:      400, // ctr 0.004
		Conversions: 10,
		Spend:       1200, // cpa 120, over the 1000 budget
		Revenue:     2400,
	})

	recs := Recommend(summary, 1000, models.DefaultThresholds())

	byType := map[models.RecommendationType]models.OptimizationRecommendation{}
	for _, rec := range recs {
		byType[rec.Type] = rec
	}

	creative, ok := byType[models.RecommendationCreative]
	if !ok {
		t.Fatalf("expected a creative recommendation, got %+v", recs)
	}
	if creative.Priority != models.EffortHigh {
		t.Errorf("creative priority = %v, want high for critical ctr", creative.Priority)
	}
	if len(creative.ActionItems) == 0 {
		t.Errorf("creative recommendation has no action items")
	}

	targeting, ok := byType[models.RecommendationTargeting]
	if !ok {
		t.Fatalf("expected a targeting recommendation, got %+v", recs)
	}
	if targeting.Priority != models.EffortHigh {
		t.Errorf("targeting priority = %v, want high for critical cpa", targeting.Priority)
	}

	if _, ok := byType[models.RecommendationBudget]; !ok {
		t.Fatalf("expected a budget recommendation, got %+v", recs)
	}
}
