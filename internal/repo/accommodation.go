package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lmercier/triptailor/internal/domain"
)

// AccommodationRepo defines read access to the lodging catalog.
type AccommodationRepo interface {
	// ListRoomsNear returns rooms inside a bounding box around center,
	// ordered by nightly price ascending. The box over-covers the radius;
	// the finder applies the exact distance cut.
	ListRoomsNear(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.AccommodationRoom, error)

	// ListExtrasByRoom returns the optional add-ons attached to a room,
	// ordered by name.
	ListExtrasByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.AccommodationExtra, error)
}

// pgAccommodationRepo is the Postgres implementation of AccommodationRepo.
type pgAccommodationRepo struct {
	db db
}

// NewAccommodationRepo constructs an AccommodationRepo backed by the provided
// db connection.
func NewAccommodationRepo(db db) AccommodationRepo {
	return &pgAccommodationRepo{db: db}
}

// ListRoomsNear returns rooms inside the padded bounding box around center.
func (r *pgAccommodationRepo) ListRoomsNear(ctx context.Context, center domain.Location, radiusKm float64) ([]domain.AccommodationRoom, error) {
	const q = `
		SELECT id, name, latitude, longitude, nightly_price, capacity
		FROM accommodation_rooms
		WHERE latitude BETWEEN @min_lat AND @max_lat
		  AND longitude BETWEEN @min_lng AND @max_lng
		ORDER BY nightly_price`

	bound := boundAround(center, radiusKm)
	args := pgx.NamedArgs{
		"min_lat": bound.Min.Lat(),
		"max_lat": bound.Max.Lat(),
		"min_lng": bound.Min.Lon(),
		"max_lng": bound.Max.Lon(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.AccommodationRepo.ListRoomsNear: %w", err)
	}
	defer rows.Close()

	var rooms []domain.AccommodationRoom
	for rows.Next() {
		var (
			room domain.AccommodationRoom
			id   pgtype.UUID
		)
		err := rows.Scan(&id, &room.Name, &room.Location.Latitude, &room.Location.Longitude, &room.NightlyPrice, &room.Capacity)
		if err != nil {
			return nil, fmt.Errorf("repo.AccommodationRepo.ListRoomsNear: scan: %w", err)
		}
		room.ID = uuid.UUID(id.Bytes)
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AccommodationRepo.ListRoomsNear: rows: %w", err)
	}
	return rooms, nil
}

// ListExtrasByRoom returns the add-ons attached to a room.
func (r *pgAccommodationRepo) ListExtrasByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.AccommodationExtra, error) {
	const q = `
		SELECT id, room_id, name, price
		FROM accommodation_extras
		WHERE room_id = @room_id
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"room_id": roomID})
	if err != nil {
		return nil, fmt.Errorf("repo.AccommodationRepo.ListExtrasByRoom: %w", err)
	}
	defer rows.Close()

	var extras []domain.AccommodationExtra
	for rows.Next() {
		e, err := scanExtra(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AccommodationRepo.ListExtrasByRoom: scan: %w", err)
		}
		extras = append(extras, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AccommodationRepo.ListExtrasByRoom: rows: %w", err)
	}
	return extras, nil
}

// scanExtra maps a single database row into a domain.AccommodationExtra.
func scanExtra(s scanner) (domain.AccommodationExtra, error) {
	var (
		e        domain.AccommodationExtra
		id, room pgtype.UUID
	)
	err := s.Scan(&id, &room, &e.Name, &e.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AccommodationExtra{}, domain.ErrNotFound
		}
		return domain.AccommodationExtra{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.RoomID = uuid.UUID(room.Bytes)
	return e, nil
}
