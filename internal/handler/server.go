// Package handler implements the HTTP handlers for the TripTailor API.
// All handlers are methods on Server; routes are registered by Routes.
// Handlers only parse input, call the service layer, and map domain errors
// to HTTP responses — no business logic lives here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/service"
	"github.com/lmercier/triptailor/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the engine or the database.
type TripServicer interface {
	Generate(ctx context.Context, token string, filters domain.SearchFilters) ([]domain.TripProposal, error)
	SwapAccommodation(ctx context.Context, token string, position int, req service.SwapRequest) (domain.TripProposal, error)
}

// Server holds the handlers' dependencies. Methods live in domain-specific
// files (trips.go, health.go) but all operate on this struct.
type Server struct {
	trips TripServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer) *Server {
	return &Server{trips: trips}
}

// Routes returns the chi router for the full API surface.
// Middleware is applied by the caller (main.go) so tests can mount the bare
// routes without the logging stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/generate", s.generateTrips)
		r.Get("/newAccommodation/{departureLocation}/{depDate}/{arrivDate}/{duration}/{budget}/{people}", s.newAccommodation)
		r.Get("/newTransport", s.newTransport)
	})

	return r
}
