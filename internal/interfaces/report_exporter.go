// internal/interfaces/report_exporter.go
package interfaces

import (
	"context"

	"adpulse/internal/models"
)

// ReportExporter publishes a rendered analysis to external storage and
// returns the object key it was written under.
type ReportExporter interface {
	ExportAnalysis(ctx context.Context, analysis *models.CampaignPerformanceAnalysis) (string, error)
}
