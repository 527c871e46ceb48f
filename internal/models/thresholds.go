// internal/models/thresholds.go
package models

// ThresholdBand is a warning/critical boundary pair for one metric.
type ThresholdBand struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// PerformanceThresholds holds the alerting boundaries per metric. Direction
// differs per metric: for ctr, roi and roas lower is worse (warning sits
// above critical), for cpa higher is worse (warning sits below critical).
// Consumers must respect the direction per metric, not normalize it.
type PerformanceThresholds struct {
	CTR  ThresholdBand `json:"ctr"`
	CPA  ThresholdBand `json:"cpa"`
	ROI  ThresholdBand `json:"roi"`
	ROAS ThresholdBand `json:"roas"`
}

// DefaultThresholds returns the stock alerting configuration. Downstream
// alerting depends on these literal values; change them only together with
// every consumer.
func DefaultThresholds() PerformanceThresholds {
	return PerformanceThresholds{
		CTR:  ThresholdBand{Warning: 0.01, Critical: 0.005},
		CPA:  ThresholdBand{Warning: 50, Critical: 100},
		ROI:  ThresholdBand{Warning: 0.2, Critical: 0.0},
		ROAS: ThresholdBand{Warning: 1.5, Critical: 1.0},
	}
}
