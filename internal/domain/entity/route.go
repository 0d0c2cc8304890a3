package entity

// TrafficDensity is a synthesized congestion proxy derived from trip
// distance, not a live traffic measurement.
type TrafficDensity string

const (
	// TrafficDensityLow indicates free-flowing highway or rural travel.
	TrafficDensityLow TrafficDensity = "low"
	// TrafficDensityMedium indicates mixed urban travel.
	TrafficDensityMedium TrafficDensity = "medium"
	// TrafficDensityHigh indicates dense inner-city travel.
	TrafficDensityHigh TrafficDensity = "high"
)

// String returns the string representation of the TrafficDensity.
func (d TrafficDensity) String() string {
	return string(d)
}

// IsValid checks if the TrafficDensity is a valid value.
func (d TrafficDensity) IsValid() bool {
	switch d {
	case TrafficDensityLow, TrafficDensityMedium, TrafficDensityHigh:
		return true
	default:
		return false
	}
}

// RouteInfo summarizes a single route for display.
type RouteInfo struct {
	Distance             string         `json:"distance"` // human-readable, e.g. "500 m" or "1.2 km"
	Duration             string         `json:"duration"` // human-readable, e.g. "12 mins"
	TrafficDensity       TrafficDensity `json:"traffic_density"`
	AvoidsTrafficSignals bool           `json:"avoids_traffic_signals"`
}

// AlternativeRoute is a secondary route suggestion with its own waypoints.
type AlternativeRoute struct {
	Info      RouteInfo       `json:"info"`
	Waypoints []GeoCoordinate `json:"waypoints"`
}

// OptimizedRoute is the full routing result between two coordinates.
// Waypoints always start at Start and finish at End, in the exact shape a
// mapping display consumes directly. Value object, never mutated after
// construction.
type OptimizedRoute struct {
	Start        GeoCoordinate      `json:"start"`
	End          GeoCoordinate      `json:"end"`
	Info         RouteInfo          `json:"info"`
	Waypoints    []GeoCoordinate    `json:"waypoints"`
	Alternatives []AlternativeRoute `json:"alternatives,omitempty"`
}
