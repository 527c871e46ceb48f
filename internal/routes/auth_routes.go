// internal/routes/auth_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"adpulse/internal/config"
	"adpulse/internal/handlers"
	"adpulse/internal/repository"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(repository.NewUserRepository(db), cfg)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})
}
