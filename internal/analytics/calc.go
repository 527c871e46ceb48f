// internal/analytics/calc.go
package analytics

import (
	"fmt"

	"adpulse/internal/models"
)

// WithCalculated builds the extended metric shape from raw counters. All
// five ratios are always set; zero denominators yield 0 rather than NaN.
func WithCalculated(base models.CampaignMetric) models.CampaignMetricWithCalculated {
	out := models.CampaignMetricWithCalculated{CampaignMetric: base}

	if base.Impressions > 0 {
		out.CTR = round4(float64(base.Clicks) / float64(base.Impressions))
	}
	if base.Clicks > 0 {
		out.CPC = round2(base.Spend / float64(base.Clicks))
	}
	if base.Conversions > 0 {
		out.CPA = round2(base.Spend / float64(base.Conversions))
	}
	if base.Spend > 0 {
		out.ROI = round4((base.Revenue - base.Spend) / base.Spend)
		out.ROAS = round2(base.Revenue / base.Spend)
	}

	return out
}

// Breach classifies a metric value against its threshold band. Direction
// matters per metric: for ctr, roi and roas a low value is bad, for cpa a
// high value is bad. The band encodes the direction by the relative order
// of warning and critical, so the comparison flips with it.
type Breach int

const (
	BreachNone Breach = iota
	BreachWarning
	BreachCritical
)

func Classify(value float64, band models.ThresholdBand) Breach {
	if band.Warning >= band.Critical {
		// Lower is worse (ctr, roi, roas).
		switch {
		case value < band.Critical:
			return BreachCritical
		case value < band.Warning:
			return BreachWarning
		}
		return BreachNone
	}

	// Higher is worse (cpa).
	switch {
	case value > band.Critical:
		return BreachCritical
	case value > band.Warning:
		return BreachWarning
	}
	return BreachNone
}

func severityFor(b Breach) models.AnomalySeverity {
	if b == BreachCritical {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}

type observed struct {
	name  string
	value float64
	band  models.ThresholdBand
}

func observedMetrics(summary models.CampaignMetricWithCalculated, thresholds models.PerformanceThresholds) []observed {
	return []observed{
		{"ctr", summary.CTR, thresholds.CTR},
		{"cpa", summary.CPA, thresholds.CPA},
		{"roi", summary.ROI, thresholds.ROI},
		{"roas", summary.ROAS, thresholds.ROAS},
	}
}

// DetectAnomalies compares the summary ratios against the thresholds and
// reports every warning or critical breach. The expected value is the
// warning boundary the metric should stay on the good side of.
func DetectAnomalies(summary models.CampaignMetricWithCalculated, thresholds models.PerformanceThresholds) []models.PerformanceAnomaly {
	anomalies := []models.PerformanceAnomaly{}
	for _, m := range observedMetrics(summary, thresholds) {
		breach := Classify(m.value, m.band)
		if breach == BreachNone {
			continue
		}

		level := "warning"
		if breach == BreachCritical {
			level = "critical"
		}

		anomalies = append(anomalies, models.PerformanceAnomaly{
			Metric:      m.name,
			Value:       m.value,
			Expected:    m.band.Warning,
			Deviation:   round4(m.value - m.band.Warning),
			Severity:    severityFor(breach),
			Description: fmt.Sprintf("%s of %.4g breached the %s threshold of %.4g", m.name, m.value, level, m.band.Warning),
		})
	}
	return anomalies
}

// Insights renders a short qualitative summary of a period.
func Insights(summary models.CampaignMetricWithCalculated, thresholds models.PerformanceThresholds) []string {
	insights := []string{}

	if summary.Impressions == 0 {
		insights = append(insights, "No impressions recorded in this period.")
		return insights
	}

	switch Classify(summary.CTR, thresholds.CTR) {
	case BreachNone:
		insights = append(insights, fmt.Sprintf("Click-through rate of %.2f%% is healthy.", summary.CTR*100))
	default:
		insights = append(insights, fmt.Sprintf("Click-through rate of %.2f%% is below target; creatives may need a refresh.", summary.CTR*100))
	}

	if summary.Conversions > 0 {
		switch Classify(summary.CPA, thresholds.CPA) {
		case BreachNone:
			insights = append(insights, fmt.Sprintf("Cost per acquisition of %.2f is within budget.", summary.CPA))
		default:
			insights = append(insights, fmt.Sprintf("Cost per acquisition of %.2f is running hot.", summary.CPA))
		}
	} else {
		insights = append(insights, "No conversions recorded in this period.")
	}

	if summary.Spend > 0 {
		if Classify(summary.ROAS, thresholds.ROAS) == BreachNone {
			insights = append(insights, fmt.Sprintf("Return on ad spend of %.2fx is above break-even.", summary.ROAS))
		} else {
			insights = append(insights, fmt.Sprintf("Return on ad spend of %.2fx needs attention.", summary.ROAS))
		}
	}

	return insights
}

func round2(f float64) float64 {
	if f < 0 {
		return -round2(-f)
	}
	return float64(int64(f*100+0.5)) / 100
}

func round4(f float64) float64 {
	if f < 0 {
		return -round4(-f)
	}
	return float64(int64(f*10000+0.5)) / 10000
}
