package impl

import (
	"context"

	"dispatch/internal/domain/entity"
	"dispatch/internal/usecase"
)

type etaService struct {
	routing usecase.RoutingUsecase
}

// NewETAService creates the arrival-time query surface on top of route
// synthesis. It deliberately exposes only the duration label so callers
// never depend on route internals.
func NewETAService(routing usecase.RoutingUsecase) usecase.ETAUsecase {
	return &etaService{routing: routing}
}

func (s *etaService) ETA(ctx context.Context, start, end entity.GeoCoordinate, emergency bool) (string, error) {
	route, err := s.routing.Synthesize(ctx, start, end, emergency, false)
	if err != nil {
		return "", err
	}

	return route.Info.Duration, nil
}
