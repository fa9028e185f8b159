package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransportSlot is one schedulable unit of transport inventory between two
// catalog locations. Price is per traveler; Capacity is the number of seats
// still available.
type TransportSlot struct {
	ID            uuid.UUID `json:"id"`
	OriginID      uuid.UUID `json:"originId"`
	DestinationID uuid.UUID `json:"destinationId"`
	Departure     time.Time `json:"departure"`
	Arrival       time.Time `json:"arrival"`
	Price         float64   `json:"price"`
	Class         string    `json:"class"`
	Capacity      int       `json:"capacity"`
}

// Journey is a matched outbound/inbound slot pair, tagged with the service
// class both legs share. TotalCost is per-leg price summed over both legs and
// multiplied by the traveler count.
type Journey struct {
	Outbound  TransportSlot `json:"outbound"`
	Inbound   TransportSlot `json:"inbound"`
	Class     string        `json:"class"`
	TotalCost float64       `json:"totalCost"`
}

// NewJourney pairs two slots into a journey and derives its total cost.
func NewJourney(outbound, inbound TransportSlot, class string, travelers int) Journey {
	return Journey{
		Outbound:  outbound,
		Inbound:   inbound,
		Class:     class,
		TotalCost: (outbound.Price + inbound.Price) * float64(travelers),
	}
}

// StayStart is the first day of the stay: the outbound arrival truncated to
// midnight UTC.
func (j Journey) StayStart() time.Time {
	return dayOf(j.Outbound.Arrival)
}

// StayEnd is the last day of the stay: the inbound departure truncated to
// midnight UTC.
func (j Journey) StayEnd() time.Time {
	return dayOf(j.Inbound.Departure)
}

// Nights is the whole-day distance between outbound arrival and inbound
// departure. Always >= 0.
func (j Journey) Nights() int {
	return NightsBetween(j.Outbound.Arrival, j.Inbound.Departure)
}

// NightsBetween counts whole days between two instants, comparing calendar
// days in UTC and taking the absolute value.
func NightsBetween(arrival, departure time.Time) int {
	nights := int(dayOf(departure).Sub(dayOf(arrival)).Hours() / 24)
	if nights < 0 {
		return -nights
	}
	return nights
}

// dayOf truncates an instant to midnight UTC of its calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
