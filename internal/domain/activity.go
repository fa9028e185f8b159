package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivitySlot is one schedulable activity at a destination, bounded by its
// own time window. Price is per traveler.
type ActivitySlot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location Location  `json:"location"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Price    float64   `json:"price"`
	Capacity int       `json:"capacity"`
}

// WithinWindow reports whether the slot's whole time window lies inside
// [stayStart, stayEnd].
func (a ActivitySlot) WithinWindow(stayStart, stayEnd time.Time) bool {
	return !a.StartsAt.Before(stayStart) && !a.EndsAt.After(stayEnd)
}

// ActivitySelection is the ordered set of activities chosen for a stay with
// its running total. An empty selection is a valid outcome.
type ActivitySelection struct {
	Activities []ActivitySlot `json:"activities"`
	Total      float64        `json:"totalActivities"`
}
