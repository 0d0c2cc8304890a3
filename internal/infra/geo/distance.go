// Package geo provides geodesic distance calculation and human-readable
// formatting for distances and travel durations.
package geo

import (
	"fmt"
	"math"

	"dispatch/internal/domain/entity"

	"github.com/paulmach/orb"
)

const earthRadiusKm = 6371.0

// Point converts a coordinate to an orb.Point (lng, lat order).
func Point(c entity.GeoCoordinate) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Coordinate converts an orb.Point back to a coordinate.
func Coordinate(p orb.Point) entity.GeoCoordinate {
	return entity.GeoCoordinate{Latitude: p[1], Longitude: p[0]}
}

// Distance returns the great-circle distance between two coordinates in
// kilometres using the haversine formula. Symmetric, zero for identical
// points, no failure modes.
func Distance(a, b entity.GeoCoordinate) float64 {
	return haversine(Point(a), Point(b))
}

func haversine(p1, p2 orb.Point) float64 {
	lat1Rad := p1[1] * math.Pi / 180
	lng1Rad := p1[0] * math.Pi / 180
	lat2Rad := p2[1] * math.Pi / 180
	lng2Rad := p2[0] * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// FormatDistance renders a distance in kilometres for display: metres
// below one kilometre, one-decimal kilometres otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}

	return fmt.Sprintf("%.1f km", km)
}
