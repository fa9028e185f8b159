package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lmercier/triptailor/internal/domain"
	"github.com/lmercier/triptailor/internal/repo"
)

// TransportFinder queries available transport slots on one route inside a
// departure window, for a traveler count and a set of allowed service
// classes. An empty result is a valid "no candidates" outcome, not an error.
type TransportFinder struct {
	slots repo.TransportRepo
}

// NewTransportFinder constructs a TransportFinder backed by the transport repo.
func NewTransportFinder(slots repo.TransportRepo) *TransportFinder {
	return &TransportFinder{slots: slots}
}

// Find returns candidate slots ordered by departure time, keeping only slots
// whose departure lies in the window, whose remaining capacity covers the
// traveler count, and whose class is allowed.
func (f *TransportFinder) Find(ctx context.Context, originID, destinationID uuid.UUID, window domain.DateRange, travelers int, classes []string) ([]domain.TransportSlot, error) {
	slots, err := f.slots.ListByRoute(ctx, originID, destinationID, window)
	if err != nil {
		return nil, fmt.Errorf("service.TransportFinder.Find: %w", err)
	}

	candidates := []domain.TransportSlot{}
	for _, s := range slots {
		if !window.Contains(s.Departure) {
			continue
		}
		if s.Capacity < travelers {
			continue
		}
		if !classAllowed(s.Class, classes) {
			continue
		}
		candidates = append(candidates, s)
	}
	return candidates, nil
}

func classAllowed(class string, allowed []string) bool {
	for _, c := range allowed {
		if class == c {
			return true
		}
	}
	return false
}
