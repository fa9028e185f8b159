// Package domain contains the core data types for the TripTailor engine.
// This package has zero heavyweight dependencies and is imported by every
// other internal package (repo, service, handler).
package domain

import "github.com/google/uuid"

// Location is a WGS84 coordinate pair. Kept as a plain struct so the domain
// stays free of geo library types; repo and service convert to orb points
// where distance math is needed.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DepartureLocation is a point a traveler can start a trip from.
type DepartureLocation struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Center Location  `json:"centerLocation"`
}

// Destination is a place trips can be composed towards. Interests carry the
// tags used to match a traveler's destination-interest filters.
type Destination struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Center    Location  `json:"centerLocation"`
	Interests []string  `json:"interests,omitempty"`
}

// MatchesInterests reports whether the destination carries at least one of
// the wanted interest tags. An empty wanted set matches every destination.
func (d Destination) MatchesInterests(wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		for _, have := range d.Interests {
			if w == have {
				return true
			}
		}
	}
	return false
}
