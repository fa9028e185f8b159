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

// CatalogRepo defines read access to the destination and departure-location
// catalogs. The destination selector depends on this interface, not the
// concrete Postgres implementation, which allows it to be unit-tested with
// a mock.
type CatalogRepo interface {
	// ListDestinations returns every destination in the catalog, ordered by
	// name for stable iteration.
	ListDestinations(ctx context.Context) ([]domain.Destination, error)

	// ListDepartureLocations returns every departure location, ordered by name.
	ListDepartureLocations(ctx context.Context) ([]domain.DepartureLocation, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// ListDestinations returns all destinations with their interest tags.
func (r *pgCatalogRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	const q = `
		SELECT id, name, latitude, longitude, interests
		FROM destinations
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListDestinations: %w", err)
	}
	defer rows.Close()

	var destinations []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListDestinations: scan: %w", err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListDestinations: rows: %w", err)
	}
	return destinations, nil
}

// ListDepartureLocations returns all departure locations.
func (r *pgCatalogRepo) ListDepartureLocations(ctx context.Context) ([]domain.DepartureLocation, error) {
	const q = `
		SELECT id, name, latitude, longitude
		FROM departure_locations
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListDepartureLocations: %w", err)
	}
	defer rows.Close()

	var locations []domain.DepartureLocation
	for rows.Next() {
		var (
			l  domain.DepartureLocation
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &l.Name, &l.Center.Latitude, &l.Center.Longitude); err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListDepartureLocations: scan: %w", err)
		}
		l.ID = uuid.UUID(id.Bytes)
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListDepartureLocations: rows: %w", err)
	}
	return locations, nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d  domain.Destination
		id pgtype.UUID
	)
	err := s.Scan(&id, &d.Name, &d.Center.Latitude, &d.Center.Longitude, &d.Interests)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
