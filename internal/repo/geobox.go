package repo

import (
	"github.com/paulmach/orb"

	"github.com/lmercier/triptailor/internal/domain"
)

// kmPerDegree approximates the great-circle distance covered by one degree
// of latitude. Good enough for the coarse SQL pre-filter; the service layer
// applies an exact haversine cut afterwards.
const kmPerDegree = 111.0

// boundAround builds a padded bounding box around a catalog center point.
// The box intentionally over-covers (longitude degrees shrink away from the
// equator), which is fine for a pre-filter that only needs to never exclude
// a point inside the radius.
func boundAround(center domain.Location, radiusKm float64) orb.Bound {
	p := orb.Point{center.Longitude, center.Latitude}
	b := orb.Bound{Min: p, Max: p}
	return b.Pad(radiusKm / kmPerDegree)
}
