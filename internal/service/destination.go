package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/repo"
)

// DestinationSelector picks a candidate destination and departure location
// for one composition attempt. Selection is randomized among destinations
// matching the filters' interests; the departure location is drawn
// independently. One catalog lookup per call, no internal retry — retrying
// is the composer's job.
type DestinationSelector struct {
	catalog repo.CatalogRepo
	rng     *rand.Rand
}

// NewDestinationSelector constructs a selector backed by the catalog repo.
// Pass a seeded rng for deterministic tests; nil gets a time-seeded one.
func NewDestinationSelector(catalog repo.CatalogRepo, rng *rand.Rand) *DestinationSelector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &DestinationSelector{catalog: catalog, rng: rng}
}

// Pick returns a destination matching the filters' interests and an
// independently chosen departure location.
// Returns domain.ErrNoDestination when either catalog comes up empty.
func (s *DestinationSelector) Pick(ctx context.Context, filters domain.SearchFilters) (domain.Destination, domain.DepartureLocation, error) {
	destinations, err := s.catalog.ListDestinations(ctx)
	if err != nil {
		return domain.Destination{}, domain.DepartureLocation{}, fmt.Errorf("service.DestinationSelector.Pick: %w", err)
	}

	var candidates []domain.Destination
	for _, d := range destinations {
		if d.MatchesInterests(filters.Interests) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return domain.Destination{}, domain.DepartureLocation{}, fmt.Errorf("service.DestinationSelector.Pick: %w", domain.ErrNoDestination)
	}

	departures, err := s.catalog.ListDepartureLocations(ctx)
	if err != nil {
		return domain.Destination{}, domain.DepartureLocation{}, fmt.Errorf("service.DestinationSelector.Pick: %w", err)
	}
	if len(departures) == 0 {
		return domain.Destination{}, domain.DepartureLocation{}, fmt.Errorf("service.DestinationSelector.Pick: %w", domain.ErrNoDestination)
	}

	destination := candidates[s.rng.IntN(len(candidates))]
	departure := departures[s.rng.IntN(len(departures))]
	return destination, departure, nil
}
