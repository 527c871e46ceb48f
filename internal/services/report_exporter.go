package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"adpulse/internal/config"
	"adpulse/internal/models"
)

// ReportExporter uploads rendered performance analyses to S3 so the
// reporting side can pick them up without hitting the API.
type ReportExporter struct {
	uploader *manager.Uploader
	bucket   string
}

func NewReportExporter(s3Config *config.S3Config) *ReportExporter {
	return &ReportExporter{
		uploader: manager.NewUploader(s3Config.Client),
		bucket:   s3Config.Bucket,
	}
}

// ExportAnalysis writes the analysis as JSON under
// reports/{campaign_id}/{period_start}_{period_end}.json and returns the
// object key.
func (e *ReportExporter) ExportAnalysis(ctx context.Context, analysis *models.CampaignPerformanceAnalysis) (string, error) {
	if e.bucket == "" {
		return "", errors.New("report bucket is not configured")
	}

	body, err := json.Marshal(analysis)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("reports/%s/%s_%s.json",
		analysis.CampaignID,
		analysis.PeriodStart.Format("2006-01-02"),
		analysis.PeriodEnd.Format("2006-01-02"),
	)

	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"exported-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return key, nil
}
