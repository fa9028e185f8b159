package service_test

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/repo"
)

// Hand-written test doubles for the catalog repos, one function field per
// method — set only the ones your test needs.

type mockCatalogRepo struct {
	listDestinations       func(ctx context.Context) ([]domain.Destination, error)
	listDepartureLocations func(ctx context.Context) ([]domain.DepartureLocation, error)
}

func (m *mockCatalogRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return m.listDestinations(ctx)
}
func (m *mockCatalogRepo) ListDepartureLocations(ctx context.Context) ([]domain.DepartureLocation, error) {
	return m.listDepartureLocations(ctx)
}

type mockTransportRepo struct {
	listByRoute func(ctx context.Context, originID, destinationID uuid.UUID, window domain.DateRange) ([]domain.TransportSlot, error)
}

func (m *mockTransportRepo) ListByRoute(ctx context.Context, originID, destinationID uuid.UUID, window domain.DateRange) ([]domain.TransportSlot, error) {
	return m.listByRoute(ctx, originID, destinationID, window)
}

type mockAccommodationRepo struct {
	listRoomsNear    func(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.AccommodationRoom, error)
	listExtrasByRoom func(ctx context.Context, roomID uuid.UUID) ([]domain.AccommodationExtra, error)
}

func (m *mockAccommodationRepo) ListRoomsNear(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.AccommodationRoom, error) {
	return m.listRoomsNear(ctx, center, radiusKm)
}
func (m *mockAccommodationRepo) ListExtrasByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.AccommodationExtra, error) {
	return m.listExtrasByRoom(ctx, roomID)
}

type mockActivityRepo struct {
	listNear func(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.ActivitySlot, error)
}

func (m *mockActivityRepo) ListNear(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.ActivitySlot, error) {
	return m.listNear(ctx, center, radiusKm)
}

type mockSelectionRepo struct {
	replaceAll func(ctx context.Context, token string, proposals []domain.TripProposal) error
	get        func(ctx context.Context, token string, position int) (domain.TripProposal, error)
	update     func(ctx context.Context, token string, position int, proposal domain.TripProposal) error
}

func (m *mockSelectionRepo) ReplaceAll(ctx context.Context, token string, proposals []domain.TripProposal) error {
	return m.replaceAll(ctx, token, proposals)
}
func (m *mockSelectionRepo) Get(ctx context.Context, token string, position int) (domain.TripProposal, error) {
	return m.get(ctx, token, position)
}
func (m *mockSelectionRepo) Update(ctx context.Context, token string, position int, proposal domain.TripProposal) error {
	return m.update(ctx, token, position, proposal)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.CatalogRepo       = (*mockCatalogRepo)(nil)
	_ repo.TransportRepo     = (*mockTransportRepo)(nil)
	_ repo.AccommodationRepo = (*mockAccommodationRepo)(nil)
	_ repo.ActivityRepo      = (*mockActivityRepo)(nil)
	_ repo.SelectionRepo     = (*mockSelectionRepo)(nil)
)

// ---- fixtures --------------------------------------------------------------

// A small feasible world: Paris as departure, Lisbon as destination, transport
// both ways inside the June windows, rooms and activities around Lisbon.

var (
	lisbonID = uuid.MustParse("6bd7e6fe-3a85-4e3d-9f31-6fcdc4a48001")
	parisID  = uuid.MustParse("44444444-0000-4a6e-8c54-7b2a9ad48002")

	lisbonCenter = domain.Location{Latitude: 38.7223, Longitude: -9.1393}
	parisCenter  = domain.Location{Latitude: 48.8566, Longitude: 2.3522}
)

func lisbon() domain.Destination {
	return domain.Destination{ID: lisbonID, Name: "Lisbon", Center: lisbonCenter, Interests: []string{"beach", "culture"}}
}

func paris() domain.DepartureLocation {
	return domain.DepartureLocation{ID: parisID, Name: "Paris", Center: parisCenter}
}

func fixtureFilters() domain.SearchFilters {
	return domain.SearchFilters{
		Budget:           2000,
		Travelers:        2,
		TransportClasses: []string{domain.ClassFirst, domain.ClassSecond},
		OutboundDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		InboundDate:      time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		IntervalDays:     3,
	}
}

func transportSlot(origin, dest uuid.UUID, dep time.Time, price float64, class string) domain.TransportSlot {
	return domain.TransportSlot{
		ID:            uuid.New(),
		OriginID:      origin,
		DestinationID: dest,
		Departure:     dep,
		Arrival:       dep.Add(3 * time.Hour),
		Price:         price,
		Class:         class,
		Capacity:      6,
	}
}

func fixtureOutbound() []domain.TransportSlot {
	return []domain.TransportSlot{
		transportSlot(parisID, lisbonID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 120, domain.ClassSecond),
		transportSlot(parisID, lisbonID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 250, domain.ClassFirst),
	}
}

func fixtureInbound() []domain.TransportSlot {
	return []domain.TransportSlot{
		transportSlot(lisbonID, parisID, time.Date(2025, 6, 8, 18, 0, 0, 0, time.UTC), 110, domain.ClassSecond),
		transportSlot(lisbonID, parisID, time.Date(2025, 6, 7, 18, 0, 0, 0, time.UTC), 240, domain.ClassFirst),
	}
}

// nearLisbon jitters a point around the Lisbon center, mirroring how catalog
// seed data scatters inventory around a destination.
func nearLisbon(dLat, dLng float64) domain.Location {
	return domain.Location{Latitude: lisbonCenter.Latitude + dLat, Longitude: lisbonCenter.Longitude + dLng}
}

func fixtureRooms() []domain.AccommodationRoom {
	return []domain.AccommodationRoom{
		{ID: uuid.New(), Name: "Alfama Guesthouse", Location: nearLisbon(0.01, 0.01), NightlyPrice: 75, Capacity: 2},
		{ID: uuid.New(), Name: "Baixa Hotel", Location: nearLisbon(-0.02, 0.015), NightlyPrice: 110, Capacity: 4},
	}
}

// breakfastExtra serves as listExtrasByRoom for mocks whose rooms all offer
// one add-on.
func breakfastExtra(_ context.Context, roomID uuid.UUID) ([]domain.AccommodationExtra, error) {
	return []domain.AccommodationExtra{{ID: uuid.New(), RoomID: roomID, Name: "Breakfast", Price: 12}}, nil
}

// noExtras serves as listExtrasByRoom for mocks whose rooms have no add-ons.
func noExtras(context.Context, uuid.UUID) ([]domain.AccommodationExtra, error) {
	return nil, nil
}

func fixtureActivities() []domain.ActivitySlot {
	day := func(d, h int) time.Time { return time.Date(2025, 6, d, h, 0, 0, 0, time.UTC) }
	return []domain.ActivitySlot{
		{ID: uuid.New(), Name: "Tram 28 tour", Location: nearLisbon(0.005, -0.004), StartsAt: day(2, 10), EndsAt: day(2, 12), Price: 15, Capacity: 10},
		{ID: uuid.New(), Name: "Belém boat trip", Location: nearLisbon(-0.01, -0.03), StartsAt: day(4, 14), EndsAt: day(4, 17), Price: 35, Capacity: 8},
	}
}

// feasibleWorld wires mocks that always return the fixture catalog.
func feasibleWorld() (*mockCatalogRepo, *mockTransportRepo, *mockAccommodationRepo, *mockActivityRepo) {
	catalog := &mockCatalogRepo{
		listDestinations: func(context.Context) ([]domain.Destination, error) {
			return []domain.Destination{lisbon()}, nil
		},
		listDepartureLocations: func(context.Context) ([]domain.DepartureLocation, error) {
			return []domain.DepartureLocation{paris()}, nil
		},
	}
	transport := &mockTransportRepo{
		listByRoute: func(_ context.Context, originID, _ uuid.UUID, _ domain.DateRange) ([]domain.TransportSlot, error) {
			if originID == parisID {
				return fixtureOutbound(), nil
			}
			return fixtureInbound(), nil
		},
	}
	rooms := &mockAccommodationRepo{
		listRoomsNear: func(context.Context, domain.Location, float64) ([]domain.AccommodationRoom, error) {
			return fixtureRooms(), nil
		},
		listExtrasByRoom: breakfastExtra,
	}
	activities := &mockActivityRepo{
		listNear: func(context.Context, domain.Location, float64) ([]domain.ActivitySlot, error) {
			return fixtureActivities(), nil
		},
	}
	return catalog, transport, rooms, activities
}

// testRNG returns a deterministic generator so randomized selection is
// reproducible across runs.
func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}
