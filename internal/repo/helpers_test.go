package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/testutil"
)

// newTestTx opens a transaction against the test database. All repos in a
// test share the same transaction, which is rolled back when the test
// finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set and all migrations to be applied
// (TestMain in this package does that).
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// The catalogs are read-only from the application's point of view, so test
// data is inserted with plain SQL rather than through a repo method.

func insertDepartureLocation(t *testing.T, tx pgx.Tx, name string, loc domain.Location) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO departure_locations (id, name, latitude, longitude) VALUES ($1, $2, $3, $4)`,
		id, name, loc.Latitude, loc.Longitude)
	require.NoError(t, err, "insert departure location")
	return id
}

func insertDestination(t *testing.T, tx pgx.Tx, name string, loc domain.Location, interests []string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO destinations (id, name, latitude, longitude, interests) VALUES ($1, $2, $3, $4, $5)`,
		id, name, loc.Latitude, loc.Longitude, interests)
	require.NoError(t, err, "insert destination")
	return id
}

func insertTransportSlot(t *testing.T, tx pgx.Tx, originID, destinationID uuid.UUID, departure time.Time, price float64, class string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO transport_slots (id, origin_id, destination_id, departure, arrival, price, class, capacity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, originID, destinationID, departure, departure.Add(3*time.Hour), price, class, 80)
	require.NoError(t, err, "insert transport slot")
	return id
}

func insertRoom(t *testing.T, tx pgx.Tx, name string, loc domain.Location, nightlyPrice float64, capacity int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO accommodation_rooms (id, name, latitude, longitude, nightly_price, capacity)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, name, loc.Latitude, loc.Longitude, nightlyPrice, capacity)
	require.NoError(t, err, "insert room")
	return id
}

func insertExtra(t *testing.T, tx pgx.Tx, roomID uuid.UUID, name string, price float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO accommodation_extras (id, room_id, name, price) VALUES ($1, $2, $3, $4)`,
		id, roomID, name, price)
	require.NoError(t, err, "insert extra")
	return id
}

func insertActivity(t *testing.T, tx pgx.Tx, name string, loc domain.Location, startsAt time.Time, price float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO activity_slots (id, name, latitude, longitude, starts_at, ends_at, price, capacity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, name, loc.Latitude, loc.Longitude, startsAt, startsAt.Add(2*time.Hour), price, 20)
	require.NoError(t, err, "insert activity")
	return id
}

// lisbonCenter is a shared reference point for the geo query tests.
var lisbonCenter = domain.Location{Latitude: 38.7223, Longitude: -9.1393}
