package domain

import "math"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// PlanarDistance returns the straight-line distance between two points on a
// flat lat/lon plane. Shortlists only need a consistent ordering within one
// city, so no geodesic correction is applied.
func (c Coordinates) PlanarDistance(other Coordinates) float64 {
	dLat := other.Lat - c.Lat
	dLon := other.Lon - c.Lon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
