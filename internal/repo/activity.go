package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lmercier/triptailor/internal/domain"
)

// ActivityRepo defines read access to the activity slot catalog.
type ActivityRepo interface {
	// ListNear returns activity slots inside a bounding box around center,
	// ordered by start time. Time-window and budget filtering is the
	// finder's concern.
	ListNear(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.ActivitySlot, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

// ListNear returns activity slots inside the padded bounding box around center.
func (r *pgActivityRepo) ListNear(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.ActivitySlot, error) {
	const q = `
		SELECT id, name, latitude, longitude, starts_at, ends_at, price, capacity
		FROM activity_slots
		WHERE latitude BETWEEN @min_lat AND @max_lat
		  AND longitude BETWEEN @min_lng AND @max_lng
		ORDER BY starts_at`

	bound := boundAround(center, radiusKm)
	args := pgx.NamedArgs{
		"min_lat": bound.Min.Lat(),
		"max_lat": bound.Max.Lat(),
		"min_lng": bound.Min.Lon(),
		"max_lng": bound.Max.Lon(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListNear: %w", err)
	}
	defer rows.Close()

	var slots []domain.ActivitySlot
	for rows.Next() {
		var (
			a  domain.ActivitySlot
			id pgtype.UUID
		)
		err := rows.Scan(&id, &a.Name, &a.Location.Latitude, &a.Location.Longitude, &a.StartsAt, &a.EndsAt, &a.Price, &a.Capacity)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListNear: scan: %w", err)
		}
		a.ID = uuid.UUID(id.Bytes)
		slots = append(slots, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListNear: rows: %w", err)
	}
	return slots, nil
}
