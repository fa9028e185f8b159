package service

import (
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/repo"
)

// ActivityFinder selects activities at a destination that fit inside the stay
// window and the budget. An empty selection is a valid outcome — a trip with
// no activities is still a trip.
type ActivityFinder struct {
	activities repo.ActivityRepo
	radiusKm   float64
}

// NewActivityFinder constructs a finder that considers activity slots within
// radiusKm of a destination's center.
func NewActivityFinder(activities repo.ActivityRepo, radiusKm float64) *ActivityFinder {
	return &ActivityFinder{activities: activities, radiusKm: radiusKm}
}

// Find walks candidate slots in start-time order and greedily accumulates
// activities whose whole time window lies inside [stayStart, stayEnd] and
// whose cost (price x travelers) keeps the running total within budget.
// At most one activity per stay day is selected (nights + 1 days).
func (f *ActivityFinder) Find(ctx context.Context, travelers int, budget float64, stayStart, stayEnd time.Time, destination domain.Destination, nights int) (domain.ActivitySelection, error) {
	slots, err := f.activities.ListNear(ctx, destination.Center, f.radiusKm)
	if err != nil {
		return domain.ActivitySelection{}, fmt.Errorf("service.ActivityFinder.Find: %w", err)
	}

	center := orb.Point{destination.Center.Longitude, destination.Center.Latitude}
	maxActivities := nights + 1

	selection := domain.ActivitySelection{Activities: []domain.ActivitySlot{}}
	for _, slot := range slots {
		if len(selection.Activities) >= maxActivities {
			break
		}
		point := orb.Point{slot.Location.Longitude, slot.Location.Latitude}
		if geo.Distance(center, point) > f.radiusKm*1000 {
			continue
		}
		if slot.Capacity < travelers {
			continue
		}
		if !slot.WithinWindow(stayStart, stayEnd) {
			continue
		}
		cost := slot.Price * float64(travelers)
		if selection.Total+cost > budget {
			continue
		}
		selection.Activities = append(selection.Activities, slot)
		selection.Total += cost
	}
	return selection, nil
}
