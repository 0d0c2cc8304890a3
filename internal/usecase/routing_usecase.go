package usecase

import (
	"context"

	"dispatch/internal/domain/entity"
)

// RoutingUsecase defines the interface for emergency route synthesis
type RoutingUsecase interface {
	// Synthesize produces an optimized route between two coordinates,
	// including intermediate waypoints and, when requested, alternative
	// routes. The emergency flag applies the priority speed uplift.
	Synthesize(ctx context.Context, start, end entity.GeoCoordinate, emergency, includeAlternatives bool) (*entity.OptimizedRoute, error)
}

// ETAUsecase defines the interface for arrival-time estimation
type ETAUsecase interface {
	// ETA estimates the travel duration between two coordinates and
	// returns it as a human-readable label.
	ETA(ctx context.Context, start, end entity.GeoCoordinate, emergency bool) (string, error)
}
