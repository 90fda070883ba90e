package httpapi

import (
	"net/http"

	"github.com/DoyleJ11/front-office-draft/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func SetupRoutes(api *API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(api.log))

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/catalog", api.Catalog)
	r.Get("/modes", api.Modes)
	r.Post("/evaluate", api.Evaluate)
	r.Post("/simulate", api.Simulate)
	r.Get("/records/{mode}", api.Records)

	// Live drafting
	r.Post("/sessions", api.CreateSession)
	r.Get("/ws", ws.Handler(api.hub, api.log))
	return r
}
