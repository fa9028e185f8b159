package service

import "github.com/lmercier/triptailor/internal/domain"

// MatchJourney pairs outbound and inbound slots into the cheapest valid round
// trip within budget. For every allowed class and every (outbound, inbound)
// pair of that class, the cost is (out.Price + in.Price) x travelers; pairs
// above budget are discarded. Returns nil when nothing qualifies — the caller
// treats that as a retryable "no result", not an error.
//
// Tie-break: the first minimum encountered wins. Iteration order is allowed
// classes in the given order, outbound-major, then inbound — stable by
// construction, so matching is reproducible for identical inputs.
func MatchJourney(classes []string, outbound, inbound []domain.TransportSlot, budget float64, travelers int) *domain.Journey {
	var best *domain.Journey
	for _, class := range classes {
		for _, out := range outbound {
			if out.Class != class {
				continue
			}
			for _, in := range inbound {
				if in.Class != class {
					continue
				}
				cost := (out.Price + in.Price) * float64(travelers)
				if cost > budget {
					continue
				}
				if best == nil || cost < best.TotalCost {
					j := domain.NewJourney(out, in, class, travelers)
					best = &j
				}
			}
		}
	}
	return best
}
