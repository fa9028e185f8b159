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

// TransportRepo defines read access to the transport slot catalog.
type TransportRepo interface {
	// ListByRoute returns every slot from origin to destination whose
	// departure falls inside the given window, ordered by departure time.
	// Capacity and class filtering is the finder's concern, not the query's.
	ListByRoute(ctx context.Context, originID, destinationID uuid.UUID, window domain.DateRange) ([]domain.TransportSlot, error)
}

// pgTransportRepo is the Postgres implementation of TransportRepo.
type pgTransportRepo struct {
	db db
}

// NewTransportRepo constructs a TransportRepo backed by the provided db connection.
func NewTransportRepo(db db) TransportRepo {
	return &pgTransportRepo{db: db}
}

// ListByRoute returns slots on the route within the departure window.
func (r *pgTransportRepo) ListByRoute(ctx context.Context, originID, destinationID uuid.UUID, window domain.DateRange) ([]domain.TransportSlot, error) {
	const q = `
		SELECT id, origin_id, destination_id, departure, arrival, price, class, capacity
		FROM transport_slots
		WHERE origin_id = @origin_id
		  AND destination_id = @destination_id
		  AND departure BETWEEN @min AND @max
		ORDER BY departure`

	args := pgx.NamedArgs{
		"origin_id":      originID,
		"destination_id": destinationID,
		"min":            window.Min,
		"max":            window.Max,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TransportRepo.ListByRoute: %w", err)
	}
	defer rows.Close()

	var slots []domain.TransportSlot
	for rows.Next() {
		s, err := scanTransportSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TransportRepo.ListByRoute: scan: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TransportRepo.ListByRoute: rows: %w", err)
	}
	return slots, nil
}

// scanTransportSlot maps a single database row into a domain.TransportSlot.
func scanTransportSlot(s scanner) (domain.TransportSlot, error) {
	var (
		slot             domain.TransportSlot
		id, origin, dest pgtype.UUID
	)
	err := s.Scan(&id, &origin, &dest, &slot.Departure, &slot.Arrival, &slot.Price, &slot.Class, &slot.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TransportSlot{}, domain.ErrNotFound
		}
		return domain.TransportSlot{}, err
	}
	slot.ID = uuid.UUID(id.Bytes)
	slot.OriginID = uuid.UUID(origin.Bytes)
	slot.DestinationID = uuid.UUID(dest.Bytes)
	return slot, nil
}
