package domain

import "math"

// TripProposal is one complete, priced itinerary: a round-trip journey, an
// accommodation selection and an activity selection for the same traveler
// count. Proposals are built fresh per composition attempt and only survive
// when every sub-selection is valid.
type TripProposal struct {
	Travelers         int                    `json:"numberOfTravelers"`
	DepartureLocation DepartureLocation      `json:"departureLocation"`
	Destination       Destination            `json:"destination"`
	Journey           Journey                `json:"journey"`
	Accommodation     AccommodationSelection `json:"accommodation"`
	Activities        ActivitySelection      `json:"activities"`
	Nights            int                    `json:"nbrOfNights"`

	TotalTransport     float64 `json:"totalTransport"`
	TotalAccommodation float64 `json:"totalAccommodation"`
	TotalActivities    float64 `json:"totalActivities"`

	// Total is the grand total, rounded to two decimal places. Note that
	// only the transport share is bounded by the search budget; see the
	// budget accounting notes in DESIGN.md.
	Total float64 `json:"total"`
}

// NewTripProposal assembles a proposal from the outputs of the composition
// chain and derives its night count and totals.
func NewTripProposal(
	travelers int,
	departure DepartureLocation,
	destination Destination,
	journey Journey,
	accommodation AccommodationSelection,
	activities ActivitySelection,
) TripProposal {
	return TripProposal{
		Travelers:          travelers,
		DepartureLocation:  departure,
		Destination:        destination,
		Journey:            journey,
		Accommodation:      accommodation,
		Activities:         activities,
		Nights:             journey.Nights(),
		TotalTransport:     journey.TotalCost,
		TotalAccommodation: accommodation.Total,
		TotalActivities:    activities.Total,
		Total:              Round2(journey.TotalCost + accommodation.Total + activities.Total),
	}
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
