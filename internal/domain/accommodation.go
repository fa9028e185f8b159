package domain

import "github.com/google/uuid"

// AccommodationRoom is a bookable room near a destination. NightlyPrice is
// per room per night; Capacity is the number of travelers the room sleeps.
type AccommodationRoom struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     Location  `json:"location"`
	NightlyPrice float64   `json:"nightlyPrice"`
	Capacity     int       `json:"capacity"`
}

// AccommodationExtra is an optional add-on attachable to a room selection
// (breakfast, parking, late checkout, ...).
type AccommodationExtra struct {
	ID     uuid.UUID `json:"id"`
	RoomID uuid.UUID `json:"roomId"`
	Name   string    `json:"name"`
	Price  float64   `json:"price"`
}

// AccommodationSelection is a chosen room for a whole stay.
// Total is NightlyPrice x Nights; extras are priced separately and cleared
// whenever the room is swapped.
type AccommodationSelection struct {
	Room   AccommodationRoom    `json:"accommodationSlot"`
	Nights int                  `json:"nights"`
	Total  float64              `json:"total"`
	Extras []AccommodationExtra `json:"accommodationExtras"`
}

// NewAccommodationSelection books a room for the given night count with no
// extras.
func NewAccommodationSelection(room AccommodationRoom, nights int) AccommodationSelection {
	return AccommodationSelection{
		Room:   room,
		Nights: nights,
		Total:  room.NightlyPrice * float64(nights),
		Extras: []AccommodationExtra{},
	}
}
