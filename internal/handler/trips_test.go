package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/handler"
	"github.com/lmercier/triptailor/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	generate func(ctx context.Context, token string, filters domain.SearchFilters) ([]domain.TripProposal, error)
	swap     func(ctx context.Context, token string, position int, req service.SwapRequest) (domain.TripProposal, error)
}

func (m *mockTripServicer) Generate(ctx context.Context, token string, filters domain.SearchFilters) ([]domain.TripProposal, error) {
	return m.generate(ctx, token, filters)
}

func (m *mockTripServicer) SwapAccommodation(ctx context.Context, token string, position int, req service.SwapRequest) (domain.TripProposal, error) {
	return m.swap(ctx, token, position, req)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func newHTTPHandler(svc handler.TripServicer) http.Handler {
	return handler.NewServer(svc).Routes()
}

func proposalFixture() domain.TripProposal {
	lisbon := domain.Destination{
		ID:        uuid.New(),
		Name:      "Lisbon",
		Center:    domain.Location{Latitude: 38.72, Longitude: -9.14},
		Interests: []string{"culture", "food"},
	}
	paris := domain.DepartureLocation{
		ID:     uuid.New(),
		Name:   "Paris",
		Center: domain.Location{Latitude: 48.85, Longitude: 2.35},
	}

	dep := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	out := domain.TransportSlot{
		ID: uuid.New(), OriginID: paris.ID, DestinationID: lisbon.ID,
		Departure: dep, Arrival: dep.Add(3 * time.Hour),
		Price: 120, Class: domain.ClassSecond, Capacity: 80,
	}
	in := domain.TransportSlot{
		ID: uuid.New(), OriginID: lisbon.ID, DestinationID: paris.ID,
		Departure: dep.AddDate(0, 0, 7), Arrival: dep.AddDate(0, 0, 7).Add(3 * time.Hour),
		Price: 110, Class: domain.ClassSecond, Capacity: 80,
	}
	journey := domain.NewJourney(out, in, domain.ClassSecond, 2)

	room := domain.AccommodationRoom{
		ID: uuid.New(), Name: "Alfama Guesthouse",
		Location: lisbon.Center, NightlyPrice: 85, Capacity: 2,
	}
	accommodation := domain.NewAccommodationSelection(room, journey.Nights())

	activity := domain.ActivitySlot{
		ID: uuid.New(), Name: "Tram 28 Tour", Location: lisbon.Center,
		StartsAt: dep.AddDate(0, 0, 1), EndsAt: dep.AddDate(0, 0, 1).Add(2 * time.Hour),
		Price: 15, Capacity: 20,
	}
	activities := domain.ActivitySelection{Activities: []domain.ActivitySlot{activity}, Total: 30}

	return domain.NewTripProposal(2, paris, lisbon, journey, accommodation, activities)
}

func generateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"budget":                2000,
		"nbrOfTravelers":        2,
		"types":                 []string{domain.ClassFirst, domain.ClassSecond},
		"departureDateOutbound": "2025-06-01",
		"departureDateInbound":  "2025-06-08",
		"interval":              3,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func swapURL() string {
	return "/trips/newAccommodation/Paris/2025-06-01/2025-06-08/7/2000/2"
}

// ---- POST /trips/generate ---------------------------------------------------

func TestGenerateTrips_200(t *testing.T) {
	fixture := proposalFixture()
	svc := &mockTripServicer{
		generate: func(_ context.Context, token string, filters domain.SearchFilters) ([]domain.TripProposal, error) {
			assert.Equal(t, "anonymous", token)
			assert.Equal(t, 2000.0, filters.Budget)
			assert.Equal(t, 2, filters.Travelers)
			assert.Equal(t, 3, filters.IntervalDays)
			return []domain.TripProposal{fixture, fixture}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/generate", generateBody(t))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result bool `json:"result"`
		Trips  []struct {
			NumberOfTravelers int     `json:"numberOfTravelers"`
			NbrOfNights       int     `json:"nbrOfNights"`
			NbrOfActivities   int     `json:"nbrOfActivities"`
			Total             float64 `json:"total"`
		} `json:"trips"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Result)
	require.Len(t, resp.Trips, 2)
	assert.Equal(t, 2, resp.Trips[0].NumberOfTravelers)
	assert.Equal(t, 7, resp.Trips[0].NbrOfNights)
	assert.Equal(t, 1, resp.Trips[0].NbrOfActivities)
	assert.Equal(t, fixture.Total, resp.Trips[0].Total)
}

func TestGenerateTrips_TokenHeaderForwarded(t *testing.T) {
	var gotToken string
	svc := &mockTripServicer{
		generate: func(_ context.Context, token string, _ domain.SearchFilters) ([]domain.TripProposal, error) {
			gotToken = token
			return []domain.TripProposal{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/generate", generateBody(t))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Token", "traveler-42")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "traveler-42", gotToken)
}

func TestGenerateTrips_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		generate: func(_ context.Context, _ string, _ domain.SearchFilters) ([]domain.TripProposal, error) {
			return nil, fmt.Errorf("%w: numberOfTravelers must be at least 1", domain.ErrValidation)
		},
	}

	body := bytes.NewBufferString(`{"budget": 2000, "nbrOfTravelers": 0, "types": ["secondClass"], "departureDateOutbound": "2025-06-01", "departureDateInbound": "2025-06-08"}`)
	req := httptest.NewRequest(http.MethodPost, "/trips/generate", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Result bool   `json:"result"`
		Error  string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Result)
	assert.NotEmpty(t, resp.Error)
}

func TestGenerateTrips_422_MissingBudget(t *testing.T) {
	called := false
	svc := &mockTripServicer{
		generate: func(_ context.Context, _ string, _ domain.SearchFilters) ([]domain.TripProposal, error) {
			called = true
			return nil, nil
		},
	}

	body := bytes.NewBufferString(`{"nbrOfTravelers": 2, "types": ["secondClass"], "departureDateOutbound": "2025-06-01", "departureDateInbound": "2025-06-08"}`)
	req := httptest.NewRequest(http.MethodPost, "/trips/generate", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, called, "requests without a budget never reach the service")
}

func TestGenerateTrips_422_MalformedJSON(t *testing.T) {
	svc := &mockTripServicer{}

	req := httptest.NewRequest(http.MethodPost, "/trips/generate", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGenerateTrips_TimeoutIsNegativeResult(t *testing.T) {
	svc := &mockTripServicer{
		generate: func(_ context.Context, _ string, _ domain.SearchFilters) ([]domain.TripProposal, error) {
			return nil, domain.ErrTimeout
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/generate", generateBody(t))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	// Exhausting the deadline is an expected outcome, reported in-band.
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result bool   `json:"result"`
		Error  string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Result)
	assert.Contains(t, resp.Error, "timeout")
}

func TestGenerateTrips_500_ServiceFailure(t *testing.T) {
	svc := &mockTripServicer{
		generate: func(_ context.Context, _ string, _ domain.SearchFilters) ([]domain.TripProposal, error) {
			return nil, fmt.Errorf("repo.Catalog.ListDestinations: connection refused")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/generate", generateBody(t))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- GET /trips/newAccommodation -------------------------------------------

func TestNewAccommodation_200(t *testing.T) {
	fixture := proposalFixture()
	svc := &mockTripServicer{
		swap: func(_ context.Context, token string, position int, req service.SwapRequest) (domain.TripProposal, error) {
			assert.Equal(t, "anonymous", token)
			assert.Equal(t, 0, position)
			assert.Equal(t, service.SwapRequest{Travelers: 2, Nights: 7, Budget: 2000}, req)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, swapURL(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result bool `json:"result"`
		Trip   struct {
			Accommodation struct {
				Slot struct {
					Name string `json:"name"`
				} `json:"accommodationSlot"`
			} `json:"accommodation"`
		} `json:"trip"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Result)
	assert.Equal(t, "Alfama Guesthouse", resp.Trip.Accommodation.Slot.Name)
}

func TestNewAccommodation_PositionQueryParam(t *testing.T) {
	var gotPosition int
	svc := &mockTripServicer{
		swap: func(_ context.Context, _ string, position int, _ service.SwapRequest) (domain.TripProposal, error) {
			gotPosition = position
			return proposalFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, swapURL()+"?position=1", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gotPosition)
}

func TestNewAccommodation_404_NothingFound(t *testing.T) {
	svc := &mockTripServicer{
		swap: func(_ context.Context, _ string, _ int, _ service.SwapRequest) (domain.TripProposal, error) {
			return domain.TripProposal{}, domain.ErrNoAccommodation
		},
	}

	req := httptest.NewRequest(http.MethodGet, swapURL(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Aucun nouvel hébergement trouvé pour le filtre spécifié!", resp.Message)
}

func TestNewAccommodation_500_InvalidStoredTrip(t *testing.T) {
	svc := &mockTripServicer{
		swap: func(_ context.Context, _ string, _ int, _ service.SwapRequest) (domain.TripProposal, error) {
			return domain.TripProposal{}, domain.ErrInvalidTrip
		},
	}

	req := httptest.NewRequest(http.MethodGet, swapURL(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Message)
}

func TestNewAccommodation_422_BadPathParams(t *testing.T) {
	called := false
	svc := &mockTripServicer{
		swap: func(_ context.Context, _ string, _ int, _ service.SwapRequest) (domain.TripProposal, error) {
			called = true
			return domain.TripProposal{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/newAccommodation/Paris/2025-06-01/2025-06-08/seven/2000/2", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, called)
}

// ---- GET /trips/newTransport -------------------------------------------------

func TestNewTransport_501(t *testing.T) {
	svc := &mockTripServicer{}

	req := httptest.NewRequest(http.MethodGet, "/trips/newTransport", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
