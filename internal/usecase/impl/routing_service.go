package impl

import (
	"context"
	"math"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/infra/geo"
	"dispatch/internal/usecase"

	"gonum.org/v1/gonum/floats"
)

const (
	// fallback defaults to keep routing functional when config is missing/invalid
	defaultWaypointsPerKm = 1.5
	minSegments           = 3

	// Alternative routes are geometric proxies for route diversity, not
	// real alternate-road computations.
	altOneMidpointOffset = 0.01
	altOneDistanceScale  = 1.15
	altTwoMidpointOffset = -0.005
	altTwoDistanceScale  = 0.95
)

type routingService struct {
	waypointsPerKm float64
	traffic        *geo.TrafficModel
}

// NewRoutingService creates a new route synthesis service
func NewRoutingService(cfg *config.RoutingConfig, traffic *geo.TrafficModel) usecase.RoutingUsecase {
	perKm := defaultWaypointsPerKm
	if cfg != nil && cfg.WaypointsPerKm > 0 {
		perKm = cfg.WaypointsPerKm
	}

	return &routingService{
		waypointsPerKm: perKm,
		traffic:        traffic,
	}
}

// Synthesize builds the primary route and, when requested, two
// alternatives through displaced midpoints. Pure and reentrant: every
// call owns its own result values.
func (s *routingService) Synthesize(ctx context.Context, start, end entity.GeoCoordinate, emergency, includeAlternatives bool) (*entity.OptimizedRoute, error) {
	if !start.IsValid() || !end.IsValid() {
		return nil, domainerrors.ErrInvalidCoordinate
	}

	distanceKm := geo.Distance(start, end)
	density := s.traffic.ClassifyDensity(distanceKm)
	speed := s.traffic.AverageSpeed(density, emergency)

	segments := s.segmentCount(distanceKm)

	route := &entity.OptimizedRoute{
		Start: start,
		End:   end,
		Info: entity.RouteInfo{
			Distance:             geo.FormatDistance(distanceKm),
			Duration:             s.traffic.EstimateTravelTime(distanceKm, speed),
			TrafficDensity:       density,
			AvoidsTrafficSignals: emergency,
		},
		Waypoints: interpolate(start, end, segments),
	}

	if includeAlternatives {
		route.Alternatives = []entity.AlternativeRoute{
			s.alternative(start, end, distanceKm, segments, altProfile{
				midpointOffset: altOneMidpointOffset,
				distanceScale:  altOneDistanceScale,
				density:        entity.TrafficDensityLow,
				avoidsSignals:  true,
				emergency:      emergency,
			}),
			s.alternative(start, end, distanceKm, segments, altProfile{
				midpointOffset: altTwoMidpointOffset,
				distanceScale:  altTwoDistanceScale,
				density:        entity.TrafficDensityMedium,
				avoidsSignals:  emergency,
				emergency:      emergency,
			}),
		}
	}

	return route, nil
}

type altProfile struct {
	midpointOffset float64
	distanceScale  float64
	density        entity.TrafficDensity
	avoidsSignals  bool
	emergency      bool
}

// alternative routes through an arithmetic midpoint displaced by a fixed
// degree offset, with each leg carrying half the primary segment count.
func (s *routingService) alternative(start, end entity.GeoCoordinate, distanceKm float64, segments int, profile altProfile) entity.AlternativeRoute {
	via := entity.GeoCoordinate{
		Latitude:  (start.Latitude+end.Latitude)/2 + profile.midpointOffset,
		Longitude: (start.Longitude+end.Longitude)/2 + profile.midpointOffset,
	}

	legSegments := int(math.Round(float64(segments) / 2))
	if legSegments < 1 {
		legSegments = 1
	}

	first := interpolate(start, via, legSegments)
	second := interpolate(via, end, legSegments)
	waypoints := append(first, second[1:]...)

	scaledKm := distanceKm * profile.distanceScale
	speed := s.traffic.AverageSpeed(profile.density, profile.emergency)

	return entity.AlternativeRoute{
		Info: entity.RouteInfo{
			Distance:             geo.FormatDistance(scaledKm),
			Duration:             s.traffic.EstimateTravelTime(scaledKm, speed),
			TrafficDensity:       profile.density,
			AvoidsTrafficSignals: profile.avoidsSignals,
		},
		Waypoints: waypoints,
	}
}

func (s *routingService) segmentCount(distanceKm float64) int {
	segments := int(math.Round(distanceKm * s.waypointsPerKm))
	if segments < minSegments {
		segments = minSegments
	}

	return segments
}

// interpolate returns segments+1 evenly spaced points from start to end
// inclusive.
func interpolate(start, end entity.GeoCoordinate, segments int) []entity.GeoCoordinate {
	lats := make([]float64, segments+1)
	lngs := make([]float64, segments+1)
	floats.Span(lats, start.Latitude, end.Latitude)
	floats.Span(lngs, start.Longitude, end.Longitude)

	points := make([]entity.GeoCoordinate, segments+1)
	for i := range points {
		points[i] = entity.GeoCoordinate{Latitude: lats[i], Longitude: lngs[i]}
	}

	return points
}
