package testutil

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lmercier/triptailor/internal/domain"
)

// SeedSummary reports how many rows SeedCatalog inserted per table.
type SeedSummary struct {
	DepartureLocations int
	Destinations       int
	TransportSlots     int
	Rooms              int
	Extras             int
	Activities         int
}

// seedPlace is a named point used to generate the synthetic catalog.
type seedPlace struct {
	name      string
	loc       domain.Location
	interests []string
}

var seedDepartures = []seedPlace{
	{name: "Paris", loc: domain.Location{Latitude: 48.8566, Longitude: 2.3522}},
	{name: "Geneva", loc: domain.Location{Latitude: 46.2044, Longitude: 6.1432}},
	{name: "Brussels", loc: domain.Location{Latitude: 50.8503, Longitude: 4.3517}},
}

var seedDestinations = []seedPlace{
	{name: "Lisbon", loc: domain.Location{Latitude: 38.7223, Longitude: -9.1393}, interests: []string{"culture", "food", "beach"}},
	{name: "Barcelona", loc: domain.Location{Latitude: 41.3874, Longitude: 2.1686}, interests: []string{"culture", "beach", "nightlife"}},
	{name: "Rome", loc: domain.Location{Latitude: 41.9028, Longitude: 12.4964}, interests: []string{"culture", "food", "history"}},
	{name: "Innsbruck", loc: domain.Location{Latitude: 47.2692, Longitude: 11.4041}, interests: []string{"hiking", "skiing"}},
	{name: "Copenhagen", loc: domain.Location{Latitude: 55.6761, Longitude: 12.5683}, interests: []string{"culture", "design", "food"}},
}

var seedExtraNames = []string{"Breakfast", "Airport shuttle", "Late checkout", "Spa access", "Parking"}

var seedActivityNames = []string{
	"Old Town Walking Tour", "Food Market Visit", "River Cruise",
	"Museum Pass", "Bike Rental Day", "Cooking Class", "Wine Tasting",
}

// SeedCatalog fills the catalog tables with a synthetic but plausible world:
// every departure location is connected to every destination by several
// outbound and return slots per day in both classes, and each destination
// gets rooms, extras and activities jittered around its center.
//
// from/to bound the departure dates of generated transport and activity
// slots. Existing rows are left alone; call this against an empty database.
func SeedCatalog(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, from, to time.Time) (SeedSummary, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	var summary SeedSummary

	tx, err := pool.Begin(ctx)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("testutil.SeedCatalog: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	departureIDs := make([]uuid.UUID, len(seedDepartures))
	for i, p := range seedDepartures {
		departureIDs[i] = uuid.New()
		_, err := tx.Exec(ctx,
			`INSERT INTO departure_locations (id, name, latitude, longitude) VALUES ($1, $2, $3, $4)`,
			departureIDs[i], p.name, p.loc.Latitude, p.loc.Longitude)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("testutil.SeedCatalog: departure %s: %w", p.name, err)
		}
		summary.DepartureLocations++
	}

	for _, dest := range seedDestinations {
		destID := uuid.New()
		_, err := tx.Exec(ctx,
			`INSERT INTO destinations (id, name, latitude, longitude, interests) VALUES ($1, $2, $3, $4, $5)`,
			destID, dest.name, dest.loc.Latitude, dest.loc.Longitude, dest.interests)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("testutil.SeedCatalog: destination %s: %w", dest.name, err)
		}
		summary.Destinations++

		for _, originID := range departureIDs {
			n, err := seedRoute(ctx, tx, rng, originID, destID, from, to)
			if err != nil {
				return SeedSummary{}, fmt.Errorf("testutil.SeedCatalog: route to %s: %w", dest.name, err)
			}
			summary.TransportSlots += n
		}

		rooms, extras, err := seedRooms(ctx, tx, rng, dest.loc)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("testutil.SeedCatalog: rooms near %s: %w", dest.name, err)
		}
		summary.Rooms += rooms
		summary.Extras += extras

		activities, err := seedActivities(ctx, tx, rng, dest.loc, from, to)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("testutil.SeedCatalog: activities near %s: %w", dest.name, err)
		}
		summary.Activities += activities
	}

	if err := tx.Commit(ctx); err != nil {
		return SeedSummary{}, fmt.Errorf("testutil.SeedCatalog: commit: %w", err)
	}
	return summary, nil
}

// seedRoute inserts outbound and return slots for one (origin, destination)
// pair: one slot per day, class and fare drawn at random.
func seedRoute(ctx context.Context, tx pgx.Tx, rng *rand.Rand, originID, destID uuid.UUID, from, to time.Time) (int, error) {
	const q = `
		INSERT INTO transport_slots (id, origin_id, destination_id, departure, arrival, price, class, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	inserted := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, leg := range [][2]uuid.UUID{{originID, destID}, {destID, originID}} {
			class := domain.ClassSecond
			price := 60 + rng.Float64()*120
			if rng.IntN(3) == 0 {
				class = domain.ClassFirst
				price *= 2
			}
			departure := day.Add(time.Duration(6+rng.IntN(14)) * time.Hour)
			arrival := departure.Add(time.Duration(2+rng.IntN(5)) * time.Hour)
			capacity := 40 + rng.IntN(160)

			_, err := tx.Exec(ctx, q, uuid.New(), leg[0], leg[1], departure, arrival, domain.Round2(price), class, capacity)
			if err != nil {
				return inserted, err
			}
			inserted++
		}
	}
	return inserted, nil
}

// seedRooms inserts a handful of rooms jittered around the destination center,
// each with a random subset of the known extras.
func seedRooms(ctx context.Context, tx pgx.Tx, rng *rand.Rand, center domain.Location) (rooms, extras int, err error) {
	const roomQ = `
		INSERT INTO accommodation_rooms (id, name, latitude, longitude, nightly_price, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	const extraQ = `
		INSERT INTO accommodation_extras (id, room_id, name, price)
		VALUES ($1, $2, $3, $4)`

	n := 4 + rng.IntN(4)
	for i := 0; i < n; i++ {
		roomID := uuid.New()
		name := fmt.Sprintf("Room %s", roomID.String()[:8])
		price := 45 + rng.Float64()*160
		capacity := 1 + rng.IntN(5)

		_, err = tx.Exec(ctx, roomQ, roomID, name,
			jitter(rng, center.Latitude), jitter(rng, center.Longitude),
			domain.Round2(price), capacity)
		if err != nil {
			return rooms, extras, err
		}
		rooms++

		for _, extraName := range seedExtraNames {
			if rng.IntN(3) != 0 {
				continue
			}
			_, err = tx.Exec(ctx, extraQ, uuid.New(), roomID, extraName, domain.Round2(5+rng.Float64()*35))
			if err != nil {
				return rooms, extras, err
			}
			extras++
		}
	}
	return rooms, extras, nil
}

// seedActivities inserts activity slots jittered around the destination
// center, spread across the seeded date range.
func seedActivities(ctx context.Context, tx pgx.Tx, rng *rand.Rand, center domain.Location, from, to time.Time) (int, error) {
	const q = `
		INSERT INTO activity_slots (id, name, latitude, longitude, starts_at, ends_at, price, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	days := int(to.Sub(from).Hours()/24) + 1
	inserted := 0
	for _, name := range seedActivityNames {
		startsAt := from.AddDate(0, 0, rng.IntN(days)).Add(time.Duration(8+rng.IntN(10)) * time.Hour)
		endsAt := startsAt.Add(time.Duration(1+rng.IntN(4)) * time.Hour)

		_, err := tx.Exec(ctx, q, uuid.New(), name,
			jitter(rng, center.Latitude), jitter(rng, center.Longitude),
			startsAt, endsAt, domain.Round2(8+rng.Float64()*50), 8+rng.IntN(40))
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// jitter offsets a coordinate by up to ±0.1 degrees, roughly 11 km of
// latitude, so seeded places cluster around but not exactly on the center.
func jitter(rng *rand.Rand, v float64) float64 {
	return v + (rng.Float64()-0.5)*0.2
}
