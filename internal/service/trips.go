package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/repo"
)

// TripService is the handler-facing surface of the engine: it runs the
// composer and keeps the per-token proposal selection up to date so the
// accommodation swap can find "the currently selected trip" later.
type TripService struct {
	composer      *TripComposer
	accommodation *AccommodationFinder
	selections    repo.SelectionRepo
}

// NewTripService constructs a TripService.
func NewTripService(composer *TripComposer, accommodation *AccommodationFinder, selections repo.SelectionRepo) *TripService {
	return &TripService{composer: composer, accommodation: accommodation, selections: selections}
}

// Generate composes proposals for the filters and stores them under the
// caller's token, replacing whatever that token had before (last-write-wins
// per token; concurrent requests with distinct tokens never interact).
func (s *TripService) Generate(ctx context.Context, token string, filters domain.SearchFilters) ([]domain.TripProposal, error) {
	proposals, err := s.composer.Compose(ctx, filters)
	if err != nil {
		return nil, err
	}
	if err := s.selections.ReplaceAll(ctx, token, proposals); err != nil {
		return nil, fmt.Errorf("service.TripService.Generate: %w", err)
	}
	return proposals, nil
}

// SwapRequest carries the re-search parameters of an accommodation swap.
type SwapRequest struct {
	Travelers int
	Nights    int
	Budget    float64
}

// SwapAccommodation re-runs the accommodation search against a stored
// proposal and replaces its lodging if the candidate is at most as expensive
// (per night) as the current one. Previously chosen extras are cleared on
// replacement and the proposal's totals are recomputed.
//
// Returns domain.ErrInvalidTrip when no proposal (or no accommodation) exists
// at (token, position), and domain.ErrNoAccommodation when the search finds
// nothing or nothing cheaper.
func (s *TripService) SwapAccommodation(ctx context.Context, token string, position int, req SwapRequest) (domain.TripProposal, error) {
	proposal, err := s.selections.Get(ctx, token, position)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TripProposal{}, fmt.Errorf("service.TripService.SwapAccommodation: %w", domain.ErrInvalidTrip)
		}
		return domain.TripProposal{}, fmt.Errorf("service.TripService.SwapAccommodation: %w", err)
	}
	if proposal.Accommodation.Room.ID == uuid.Nil {
		return domain.TripProposal{}, fmt.Errorf("service.TripService.SwapAccommodation: %w", domain.ErrInvalidTrip)
	}

	candidate, err := s.accommodation.Find(ctx, req.Travelers, req.Nights, proposal.Destination, req.Budget)
	if err != nil {
		return domain.TripProposal{}, fmt.Errorf("service.TripService.SwapAccommodation: %w", err)
	}
	if candidate == nil {
		return domain.TripProposal{}, fmt.Errorf("service.TripService.SwapAccommodation: %w", domain.ErrNoAccommodation)
	}
	if candidate.Room.NightlyPrice > proposal.Accommodation.Room.NightlyPrice {
		return domain.TripProposal{}, fmt.Errorf("service.TripService.SwapAccommodation: no cheaper room: %w", domain.ErrNoAccommodation)
	}

	proposal.Accommodation = *candidate
	// The swap starts the new lodging from a clean slate: any extras the
	// finder attached (or the previous selection carried) are dropped.
	proposal.Accommodation.Extras = []domain.AccommodationExtra{}
	proposal.TotalAccommodation = candidate.Total
	proposal.Total = domain.Round2(proposal.TotalTransport + proposal.TotalAccommodation + proposal.TotalActivities)

	if err := s.selections.Update(ctx, token, position, proposal); err != nil {
		return domain.TripProposal{}, fmt.Errorf("service.TripService.SwapAccommodation: %w", err)
	}
	return proposal, nil
}
