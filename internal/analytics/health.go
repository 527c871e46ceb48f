// internal/analytics/health.go
package analytics

import (
	"adpulse/internal/models"
)

// bandScore maps a metric to 0-100 against its band: 100 at or beyond the
// good side of warning, 50 at critical, linear in between and tapering
// beyond critical.
func bandScore(value float64, band models.ThresholdBand) float64 {
	lowerIsWorse := band.Warning >= band.Critical

	if lowerIsWorse {
		if value >= band.Warning {
			return 100
		}
		if value <= band.Critical {
			span := band.Warning - band.Critical
			if span == 0 {
				return 0
			}
			deficit := (band.Critical - value) / span
			return clamp(50-deficit*50, 0, 50)
		}
		return 50 + 50*(value-band.Critical)/(band.Warning-band.Critical)
	}

	if value <= band.Warning {
		return 100
	}
	if value >= band.Critical {
		span := band.Critical - band.Warning
		if span == 0 {
			return 0
		}
		excess := (value - band.Critical) / span
		return clamp(50-excess*50, 0, 50)
	}
	return 50 + 50*(band.Critical-value)/(band.Critical-band.Warning)
}

// spendScore scores budget pacing: 100 while spend stays within budget,
// falling off linearly up to double the budget.
func spendScore(spend, budget float64) float64 {
	if budget <= 0 {
		return 100
	}
	ratio := spend / budget
	if ratio <= 1 {
		return 100
	}
	return clamp(100-(ratio-1)*100, 0, 100)
}

// HealthScore rolls the period summary into a 0-100 score with per-metric
// sub-scores. The trend compares the first and second half of the daily
// rows by ROAS with a 5% dead band.
func HealthScore(campaignID string, summary models.CampaignMetricWithCalculated, budget float64, daily []*models.CampaignMetric, thresholds models.PerformanceThresholds) models.CampaignHealthScore {
	breakdown := models.HealthBreakdown{
		CTR:   round2(bandScore(summary.CTR, thresholds.CTR)),
		CPA:   round2(bandScore(summary.CPA, thresholds.CPA)),
		ROI:   round2(bandScore(summary.ROI, thresholds.ROI)),
		Spend: round2(spendScore(summary.Spend, budget)),
	}

	overall := round2((breakdown.CTR + breakdown.CPA + breakdown.ROI + breakdown.Spend) / 4)

	return models.CampaignHealthScore{
		CampaignID: campaignID,
		Overall:    overall,
		Breakdown:  breakdown,
		Trend:      trend(daily),
	}
}

func trend(daily []*models.CampaignMetric) models.HealthTrend {
	if len(daily) < 2 {
		return models.TrendStable
	}

	mid := len(daily) / 2
	first := roasOf(daily[:mid])
	second := roasOf(daily[mid:])

	if first == 0 {
		if second > 0 {
			return models.TrendImproving
		}
		return models.TrendStable
	}

	change := (second - first) / first
	switch {
	case change > 0.05:
		return models.TrendImproving
	case change < -0.05:
		return models.TrendDeclining
	}
	return models.TrendStable
}

func roasOf(daily []*models.CampaignMetric) float64 {
	var spend, revenue float64
	for _, d := range daily {
		spend += d.Spend
		revenue += d.Revenue
	}
	if spend == 0 {
		return 0
	}
	return revenue / spend
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
