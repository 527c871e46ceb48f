// internal/routes/campaign_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"adpulse/internal/handlers"
	"adpulse/internal/interfaces"
	"adpulse/internal/repository"
)

// RegisterCampaignRoutes lays out the whole /campaigns subtree: CRUD, the
// two agent pass-through operations and the per-campaign analytics reads.
// The agent operations sit on static paths so they never collide with the
// /{id} subtree.
func RegisterCampaignRoutes(router chi.Router, db *sql.DB, agent interfaces.CampaignAgent, exporter interfaces.ReportExporter) {
	campaignRepo := repository.NewCampaignRepository(db)
	metricRepo := repository.NewMetricRepository(db)

	campaignHandler := handlers.NewCampaignHandler(campaignRepo)
	agentHandler := handlers.NewAgentHandler(agent)
	metricsHandler := handlers.NewMetricsHandler(campaignRepo, metricRepo, exporter)

	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.ListCampaigns)
		r.Post("/", campaignHandler.CreateCampaign)
		r.Get("/summary", campaignHandler.GetSummary)

		r.Post("/schedule", agentHandler.ScheduleCampaign)
		r.Post("/evaluate", agentHandler.EvaluateCampaign)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", campaignHandler.GetCampaign)
			r.Put("/", campaignHandler.UpdateCampaign)
			r.Delete("/", campaignHandler.DeleteCampaign)

			r.Post("/metrics", metricsHandler.RecordMetric)
			r.Get("/performance", metricsHandler.GetPerformance)
			r.Post("/performance/export", metricsHandler.ExportPerformance)
			r.Get("/timeseries", metricsHandler.GetTimeSeries)
			r.Get("/health", metricsHandler.GetHealthScore)
			r.Get("/recommendations", metricsHandler.GetRecommendations)
		})
	})
}
