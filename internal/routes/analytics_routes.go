// internal/routes/analytics_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"adpulse/internal/handlers"
	"adpulse/internal/interfaces"
	"adpulse/internal/repository"
)

func RegisterAnalyticsRoutes(router chi.Router, db *sql.DB, exporter interfaces.ReportExporter) {
	metricsHandler := handlers.NewMetricsHandler(
		repository.NewCampaignRepository(db),
		repository.NewMetricRepository(db),
		exporter,
	)

	router.Get("/analytics/thresholds", metricsHandler.GetThresholds)
}
