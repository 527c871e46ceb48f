// internal/routes/routes.go
package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"adpulse/internal/config"
	"adpulse/internal/interfaces"
	jwtauth "adpulse/internal/middleware"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, agent interfaces.CampaignAgent, exporter interfaces.ReportExporter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "adpulse campaign api"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		type dbStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}
		resp := struct {
			Status string   `json:"status"`
			DB     dbStatus `json:"db"`
		}{Status: "ok", DB: dbStatus{Status: "ok"}}

		status := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.DB = dbStatus{Status: "down", Error: err.Error()}
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	})

	RegisterSwaggerRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, db, cfg)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.JWTAuth(cfg.JWTSecret))
			RegisterCampaignRoutes(r, db, agent, exporter)
			RegisterAnalyticsRoutes(r, db, exporter)
		})
	})

	return r
}
