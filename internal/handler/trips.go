package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/service"
)

// defaultToken keys stored proposals for callers that send no X-User-Token.
// The token is an opaque routing key for the swap flow, not authentication.
const defaultToken = "anonymous"

// generateRequest is the JSON body of POST /trips/generate.
// Dates are plain YYYY-MM-DD values.
type generateRequest struct {
	Budget                *float64           `json:"budget"`
	NbrOfTravelers        *int               `json:"nbrOfTravelers"`
	Types                 []string           `json:"types"`
	Interests             []string           `json:"interests,omitempty"`
	DepartureDateOutbound openapi_types.Date `json:"departureDateOutbound"`
	DepartureDateInbound  openapi_types.Date `json:"departureDateInbound"`
	Interval              *int               `json:"interval"`
}

// generateResponse is the success envelope of POST /trips/generate.
type generateResponse struct {
	Result bool           `json:"result"`
	Trips  []tripResponse `json:"trips"`
}

// tripResponse flattens a domain.TripProposal into the wire shape callers
// expect: journey legs at the top level plus the per-category totals.
type tripResponse struct {
	NumberOfTravelers  int                           `json:"numberOfTravelers"`
	DepartureLocation  domain.DepartureLocation      `json:"departureLocation"`
	Destination        domain.Destination            `json:"destination"`
	OutboundJourney    domain.TransportSlot          `json:"outboundJourney"`
	InboundJourney     domain.TransportSlot          `json:"inboundJourney"`
	Accommodation      domain.AccommodationSelection `json:"accommodation"`
	NbrOfNights        int                           `json:"nbrOfNights"`
	NbrOfActivities    int                           `json:"nbrOfActivities"`
	Activities         []domain.ActivitySlot         `json:"activities"`
	TotalTransport     float64                       `json:"totalTransport"`
	TotalAccommodation float64                       `json:"totalAccommodation"`
	TotalActivities    float64                       `json:"totalActivities"`
	Total              float64                       `json:"total"`
}

// generateTrips handles POST /trips/generate.
func (s *Server) generateTrips(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body: "+err.Error())
		return
	}

	filters, err := requestToFilters(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, unwrapMessage(err))
		return
	}

	trips, err := s.trips.Generate(r.Context(), callerToken(r), filters)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusUnprocessableEntity, unwrapMessage(err))
		case errors.Is(err, domain.ErrTimeout):
			// The original surface: a timed-out generation is a negative
			// result, not a transport-level failure.
			writeError(w, http.StatusOK, domain.ErrTimeout.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := generateResponse{Result: true, Trips: make([]tripResponse, len(trips))}
	for i, t := range trips {
		resp.Trips[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// newAccommodation handles
// GET /trips/newAccommodation/{departureLocation}/{depDate}/{arrivDate}/{duration}/{budget}/{people}.
// It re-runs the accommodation search against the caller's stored trip and
// swaps the lodging when a cheaper (or equal) room is found.
func (s *Server) newAccommodation(w http.ResponseWriter, r *http.Request) {
	req, err := swapParams(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, unwrapMessage(err))
		return
	}

	position := 0
	if raw := r.URL.Query().Get("position"); raw != "" {
		position, err = strconv.Atoi(raw)
		if err != nil || position < 0 {
			writeError(w, http.StatusUnprocessableEntity, "position must be a non-negative integer")
			return
		}
	}

	trip, err := s.trips.SwapAccommodation(r.Context(), callerToken(r), position, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoAccommodation):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"message": "Aucun nouvel hébergement trouvé pour le filtre spécifié!",
			})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Result bool         `json:"result"`
		Trip   tripResponse `json:"trip"`
	}{Result: true, Trip: tripToResponse(trip)})
}

// newTransport handles GET /trips/newTransport. Reserved.
func (s *Server) newTransport(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotImplemented, "transport swap is not implemented")
}

// ---- mapping helpers --------------------------------------------------------

// callerToken returns the opaque key the caller's proposals are stored under.
func callerToken(r *http.Request) string {
	if token := r.Header.Get("X-User-Token"); token != "" {
		return token
	}
	return defaultToken
}

// requestToFilters converts the request body into domain.SearchFilters,
// rejecting missing required fields before any numeric comparison happens.
func requestToFilters(req generateRequest) (domain.SearchFilters, error) {
	if req.Budget == nil {
		return domain.SearchFilters{}, errors.New("validation error: budget is required")
	}
	if req.NbrOfTravelers == nil {
		return domain.SearchFilters{}, errors.New("validation error: nbrOfTravelers is required")
	}

	filters := domain.SearchFilters{
		Budget:           *req.Budget,
		Travelers:        *req.NbrOfTravelers,
		TransportClasses: req.Types,
		Interests:        req.Interests,
		OutboundDate:     req.DepartureDateOutbound.Time,
		InboundDate:      req.DepartureDateInbound.Time,
	}
	if req.Interval != nil {
		filters.IntervalDays = *req.Interval
	}
	return filters, filters.Validate()
}

// swapParams parses the six path segments of the accommodation swap route.
// The departure location and date segments are accepted for URL compatibility
// but only duration, budget and people drive the new search.
func swapParams(r *http.Request) (service.SwapRequest, error) {
	nights, err := strconv.Atoi(chi.URLParam(r, "duration"))
	if err != nil || nights < 0 {
		return service.SwapRequest{}, errors.New("validation error: duration must be a non-negative integer")
	}
	budget, err := strconv.ParseFloat(chi.URLParam(r, "budget"), 64)
	if err != nil || budget < 0 {
		return service.SwapRequest{}, errors.New("validation error: budget must be a non-negative number")
	}
	people, err := strconv.Atoi(chi.URLParam(r, "people"))
	if err != nil || people < 1 {
		return service.SwapRequest{}, errors.New("validation error: people must be a positive integer")
	}
	return service.SwapRequest{Travelers: people, Nights: nights, Budget: budget}, nil
}

// tripToResponse converts a domain.TripProposal into the flat wire shape.
func tripToResponse(t domain.TripProposal) tripResponse {
	return tripResponse{
		NumberOfTravelers:  t.Travelers,
		DepartureLocation:  t.DepartureLocation,
		Destination:        t.Destination,
		OutboundJourney:    t.Journey.Outbound,
		InboundJourney:     t.Journey.Inbound,
		Accommodation:      t.Accommodation,
		NbrOfNights:        t.Nights,
		NbrOfActivities:    len(t.Activities.Activities),
		Activities:         t.Activities.Activities,
		TotalTransport:     t.TotalTransport,
		TotalAccommodation: t.TotalAccommodation,
		TotalActivities:    t.TotalActivities,
		Total:              t.Total,
	}
}
