package domain

import (
	"fmt"
	"time"
)

// Transport service classes accepted in search filters. These are the only
// classes the catalog carries; anything else is rejected up front.
const (
	ClassFirst  = "firstClass"
	ClassSecond = "secondClass"
)

// KnownTransportClasses lists every valid service class, in matching order.
var KnownTransportClasses = []string{ClassFirst, ClassSecond}

// DateRange is a closed [Min, Max] window used for transport slot searches.
type DateRange struct {
	Min time.Time
	Max time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Min) && !t.After(r.Max)
}

// SearchFilters is the immutable input of one generation request.
// It is built once from caller input, validated, and then only read.
type SearchFilters struct {
	// Budget is the monetary ceiling for the trip. A zero budget is valid
	// input — it simply makes every transport combination infeasible.
	Budget float64

	// Travelers is the number of people the trip is composed for.
	Travelers int

	// TransportClasses is the set of allowed service classes.
	TransportClasses []string

	// Interests optionally narrows destination selection to destinations
	// tagged with at least one of these.
	Interests []string

	// OutboundDate and InboundDate are the target departure days for the
	// two legs; IntervalDays widens each into a symmetric search window.
	OutboundDate time.Time
	InboundDate  time.Time
	IntervalDays int
}

// Validate rejects malformed filters before they reach the search loop.
// All violations wrap ErrValidation.
func (f SearchFilters) Validate() error {
	if f.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrValidation)
	}
	if f.Travelers < 1 {
		return fmt.Errorf("%w: nbrOfTravelers must be at least 1", ErrValidation)
	}
	if len(f.TransportClasses) == 0 {
		return fmt.Errorf("%w: at least one transport class is required", ErrValidation)
	}
	for _, c := range f.TransportClasses {
		if !isKnownClass(c) {
			return fmt.Errorf("%w: unknown transport class %q", ErrValidation, c)
		}
	}
	if f.OutboundDate.IsZero() || f.InboundDate.IsZero() {
		return fmt.Errorf("%w: departure dates are required", ErrValidation)
	}
	if f.InboundDate.Before(f.OutboundDate) {
		return fmt.Errorf("%w: inbound date must not be before outbound date", ErrValidation)
	}
	if f.IntervalDays < 0 {
		return fmt.Errorf("%w: interval must not be negative", ErrValidation)
	}
	return nil
}

// OutboundRange is the search window for the outbound leg:
// OutboundDate ± IntervalDays.
func (f SearchFilters) OutboundRange() DateRange {
	return rangeAround(f.OutboundDate, f.IntervalDays)
}

// InboundRange is the search window for the inbound leg:
// InboundDate ± IntervalDays.
func (f SearchFilters) InboundRange() DateRange {
	return rangeAround(f.InboundDate, f.IntervalDays)
}

func rangeAround(date time.Time, days int) DateRange {
	return DateRange{
		Min: date.AddDate(0, 0, -days),
		Max: date.AddDate(0, 0, days),
	}
}

func isKnownClass(c string) bool {
	for _, k := range KnownTransportClasses {
		if c == k {
			return true
		}
	}
	return false
}
