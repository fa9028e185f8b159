package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing traveler count, negative budget, malformed dates).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// Stage errors. Each marks one stage of the composition chain coming up
// empty. They are absorbed by the composer's retry loop and never reach the
// HTTP layer on their own.
var (
	// ErrNoDestination means the destination catalog has no entry matching
	// the requested interests, or no departure location is available.
	ErrNoDestination = errors.New("no destination available")

	// ErrNoJourney means no outbound/inbound slot pair fits the budget.
	ErrNoJourney = errors.New("no journey within budget")

	// ErrNoAccommodation means no room near the destination fits the
	// traveler count and budget.
	ErrNoAccommodation = errors.New("no accommodation available")

	// ErrNoActivities means the activity search itself failed. An empty
	// activity list is a valid result and does not produce this error.
	ErrNoActivities = errors.New("no activities available")
)

// ErrTimeout is the only failure a generation request surfaces when the
// composition deadline expires (or the bounded attempt budget runs out)
// before a full set of proposals is assembled. No partial itinerary is
// ever returned alongside it.
var ErrTimeout = errors.New("timeout: trip generation took too long")

// ErrInvalidTrip is returned by the accommodation swap when the referenced
// proposal does not exist or carries no prior accommodation selection.
var ErrInvalidTrip = errors.New("invalid trip state: no accommodation selected")
