// internal/analytics/recommendations.go
package analytics

import (
	"fmt"

	"adpulse/internal/models"
)

func priorityFor(b Breach) models.EffortTier {
	if b == BreachCritical {
		return models.EffortHigh
	}
	return models.EffortMedium
}

// Recommend turns threshold breaches into concrete optimization
// suggestions. A healthy campaign yields an empty list.
func Recommend(summary models.CampaignMetricWithCalculated, budget float64, thresholds models.PerformanceThresholds) []models.OptimizationRecommendation {
	recs := []models.OptimizationRecommendation{}

	if b := Classify(summary.CTR, thresholds.CTR); b != BreachNone {
		recs = append(recs, models.OptimizationRecommendation{
			Type:            models.RecommendationCreative,
			Priority:        priorityFor(b),
			EstimatedEffort: models.EffortMedium,
			Title:           "Refresh underperforming creatives",
			Description:     fmt.Sprintf("CTR of %.2f%% is below the %.2f%% warning level, suggesting ad fatigue or weak messaging.", summary.CTR*100, thresholds.CTR.Warning*100),
			Impact:          "Higher CTR lowers effective CPC and improves delivery across platforms.",
			ActionItems: []string{
				"Rotate in new ad variants and pause the weakest performers",
				"A/B test headlines and calls to action",
				"Review placement-level CTR for outliers",
			},
		})
	}

	if summary.Conversions > 0 {
		if b := Classify(summary.CPA, thresholds.CPA); b != BreachNone {
			recs = append(recs, models.OptimizationRecommendation{
				Type:            models.RecommendationTargeting,
				Priority:        priorityFor(b),
				EstimatedEffort: models.EffortMedium,
				Title:           "Tighten audience targeting",
				Description:     fmt.Sprintf("Cost per acquisition of %.2f exceeds the %.2f warning level.", summary.CPA, thresholds.CPA.Warning),
				Impact:          "Narrower targeting cuts wasted spend on low-intent traffic.",
				ActionItems: []string{
					"Exclude audience segments with no recorded conversions",
					"Shift budget toward the platforms with the lowest CPA",
					"Add negative keywords or placement exclusions",
				},
			})
		}
	}

	if summary.Spend > 0 {
		if b := Classify(summary.ROAS, thresholds.ROAS); b != BreachNone {
			recs = append(recs, models.OptimizationRecommendation{
				Type:            models.RecommendationBidding,
				Priority:        priorityFor(b),
				EstimatedEffort: models.EffortLow,
				Title:           "Rework bidding strategy",
				Description:     fmt.Sprintf("ROAS of %.2fx is under the %.2fx warning level.", summary.ROAS, thresholds.ROAS.Warning),
				Impact:          "Value-based bidding steers spend toward revenue-producing clicks.",
				ActionItems: []string{
					"Switch to target-ROAS bidding where available",
					"Lower bids on segments with below-average order value",
				},
			})
		}
	}

	if budget > 0 && summary.Spend > budget {
		recs = append(recs, models.OptimizationRecommendation{
			Type:            models.RecommendationBudget,
			Priority:        models.EffortHigh,
			EstimatedEffort: models.EffortLow,
			Title:           "Spend has exceeded budget",
			Description:     fmt.Sprintf("Recorded spend of %.2f is over the campaign budget of %.2f.", summary.Spend, budget),
			Impact:          "Capping spend prevents unplanned overdelivery charges.",
			ActionItems: []string{
				"Apply a daily spend cap on each platform",
				"Confirm the campaign end date is enforced",
			},
		})
	}

	return recs
}
