package geo

import (
	"fmt"
	"math"

	"dispatch/config"
	"dispatch/internal/domain/entity"
)

const (
	// fallback defaults to keep routing functional when config is missing/invalid
	defaultEmergencySpeedFactor = 1.4

	highDensityMaxKm   = 3.0
	mediumDensityMaxKm = 10.0
)

// baseSpeedsKmh maps each density bucket to an average travel speed.
var baseSpeedsKmh = map[entity.TrafficDensity]float64{
	entity.TrafficDensityLow:    50,
	entity.TrafficDensityMedium: 30,
	entity.TrafficDensityHigh:   15,
}

// TrafficModel derives a congestion bucket and an average speed from trip
// distance. The distance-to-density mapping is a coarse proxy for real
// traffic telemetry (short hops are assumed dense urban trips, long hops
// highway travel), kept for compatibility with the dispatch application.
type TrafficModel struct {
	emergencySpeedFactor float64
}

// NewTrafficModel creates a traffic model from routing configuration.
func NewTrafficModel(cfg *config.RoutingConfig) *TrafficModel {
	factor := defaultEmergencySpeedFactor
	if cfg != nil && cfg.EmergencySpeedFactor > 0 {
		factor = cfg.EmergencySpeedFactor
	}

	return &TrafficModel{emergencySpeedFactor: factor}
}

// ClassifyDensity buckets a trip distance into a traffic density.
func (m *TrafficModel) ClassifyDensity(distanceKm float64) entity.TrafficDensity {
	switch {
	case distanceKm < highDensityMaxKm:
		return entity.TrafficDensityHigh
	case distanceKm < mediumDensityMaxKm:
		return entity.TrafficDensityMedium
	default:
		return entity.TrafficDensityLow
	}
}

// AverageSpeed returns the assumed speed in km/h for a density bucket,
// boosted when the trip has emergency priority.
func (m *TrafficModel) AverageSpeed(density entity.TrafficDensity, emergencyPriority bool) float64 {
	speed, ok := baseSpeedsKmh[density]
	if !ok {
		speed = baseSpeedsKmh[entity.TrafficDensityMedium]
	}

	if emergencyPriority {
		return speed * m.emergencySpeedFactor
	}

	return speed
}

// EstimateTravelTime renders the travel time for a distance at a given
// speed as a human-readable duration label.
func (m *TrafficModel) EstimateTravelTime(distanceKm, speedKmh float64) string {
	if speedKmh <= 0 {
		return "Less than a minute"
	}

	minutes := int(math.Round(distanceKm / speedKmh * 60))
	switch {
	case minutes < 1:
		return "Less than a minute"
	case minutes < 60:
		return fmt.Sprintf("%d mins", minutes)
	}

	hours := minutes / 60
	remainder := minutes % 60

	label := fmt.Sprintf("%d hour", hours)
	if hours > 1 {
		label += "s"
	}
	if remainder > 0 {
		label += fmt.Sprintf(" %d mins", remainder)
	}

	return label
}
