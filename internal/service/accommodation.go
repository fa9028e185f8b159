package service

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/repo"
)

// AccommodationFinder searches the lodging catalog near a destination for a
// room that sleeps the whole party and fits the budget for the stay.
//
// The finder is handed the request's full budget, not the budget minus what
// transport already consumed — observed behavior of the original wiring,
// preserved deliberately. See DESIGN.md, "budget accounting gap".
type AccommodationFinder struct {
	rooms    repo.AccommodationRepo
	radiusKm float64
}

// NewAccommodationFinder constructs a finder that considers rooms within
// radiusKm of a destination's center.
func NewAccommodationFinder(rooms repo.AccommodationRepo, radiusKm float64) *AccommodationFinder {
	return &AccommodationFinder{rooms: rooms, radiusKm: radiusKm}
}

// Find returns the cheapest qualifying selection for the stay, or nil when no
// room near the destination fits the traveler count and budget. A nil result
// is a valid "no candidates" outcome, not an error.
//
// A room qualifies when it lies within the search radius, sleeps at least
// travelers people, and NightlyPrice x nights stays within budget. The chosen
// room's extras are attached to the selection; they are optional add-ons and
// do not count toward the stay total.
func (f *AccommodationFinder) Find(ctx context.Context, travelers, nights int, destination domain.Destination, budget float64) (*domain.AccommodationSelection, error) {
	rooms, err := f.rooms.ListRoomsNear(ctx, destination.Center, f.radiusKm)
	if err != nil {
		return nil, fmt.Errorf("service.AccommodationFinder.Find: %w", err)
	}

	center := orb.Point{destination.Center.Longitude, destination.Center.Latitude}
	var best *domain.AccommodationSelection
	for _, room := range rooms {
		point := orb.Point{room.Location.Longitude, room.Location.Latitude}
		if geo.Distance(center, point) > f.radiusKm*1000 {
			// The repo's bounding box over-covers; this is the exact cut.
			continue
		}
		if room.Capacity < travelers {
			continue
		}
		total := room.NightlyPrice * float64(nights)
		if total > budget {
			continue
		}
		if best == nil || total < best.Total {
			sel := domain.NewAccommodationSelection(room, nights)
			best = &sel
		}
	}
	if best == nil {
		return nil, nil
	}

	extras, err := f.rooms.ListExtrasByRoom(ctx, best.Room.ID)
	if err != nil {
		return nil, fmt.Errorf("service.AccommodationFinder.Find: %w", err)
	}
	if len(extras) > 0 {
		best.Extras = extras
	}
	return best, nil
}
