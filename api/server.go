/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a desktop/web frontend

ROUTE GROUPS:
  /api/apartments/*  Apartments + their prepayment periods
  /api/tenants/*     Tenants
  /api/cost-types/*  Shared cost positions
  /api/owners/*      Property owners
  /api/statements/*  Statement computation and archive

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/apartments", func(r chi.Router) {
			r.Get("/", h.ListApartments)
			r.Post("/", h.CreateApartment)
			r.Put("/{id}", h.UpdateApartment)
			r.Delete("/{id}", h.DeleteApartment)
			r.Get("/{id}/periods/{year}", h.GetPeriods)
			r.Put("/{id}/periods/{year}", h.ReplacePeriods)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", h.ListTenants)
			r.Post("/", h.CreateTenant)
			r.Put("/{id}", h.UpdateTenant)
			r.Delete("/{id}", h.DeleteTenant)
		})

		r.Route("/cost-types", func(r chi.Router) {
			r.Get("/", h.ListCostTypes)
			r.Post("/", h.CreateCostType)
			r.Put("/{id}", h.UpdateCostType)
			r.Delete("/{id}", h.DeleteCostType)
		})

		r.Route("/owners", func(r chi.Router) {
			r.Get("/", h.ListOwners)
			r.Post("/", h.CreateOwner)
			r.Put("/{id}", h.UpdateOwner)
			r.Delete("/{id}", h.DeleteOwner)
		})

		r.Route("/statements", func(r chi.Router) {
			r.Get("/{year}", h.GetStatement)
			r.Post("/{year}", h.SaveStatement)
			r.Post("/{year}/compute", h.ComputeStatement)
		})
	})

	return r
}
