/*
Package server implements the application's HTTP transport layer: the
meal-plan generation endpoint, the per-meal HTML view, and static serving
of the generated assets.
*/
package server

import (
	"net/http"
	"time"

	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/plan"
	"daily-meal-planner/internal/storage"

	"github.com/rs/zerolog"
)

// Server holds the dependencies for the HTTP service.
type Server struct {
	planner *plan.Planner
	store   *storage.AssetStore
	log     zerolog.Logger
}

// New creates the Server with its dependencies.
func New(planner *plan.Planner, store *storage.AssetStore, logger zerolog.Logger) *Server {
	return &Server{
		planner: planner,
		store:   store,
		log:     logger,
	}
}

// NewHTTPServer wraps the Server in a configured *http.Server.
func NewHTTPServer(cfg *config.Config, s *Server) *http.Server {
	return &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     s.RegisterRoutes(),
		IdleTimeout: time.Minute,
		ReadTimeout: 10 * time.Second,
		// One plan run makes several slow generative round trips, so the
		// write timeout has to cover minutes, not seconds.
		WriteTimeout: 15 * time.Minute,
	}
}
