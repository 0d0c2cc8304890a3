package handler

import (
	"log/slog"
	"net/http"

	"dispatch/internal/delivery/http/response"
	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	RoutingUC usecase.RoutingUsecase
	Logger    *slog.Logger
}

// RouteHandler holds dependencies for route-related handlers
type RouteHandler struct {
	routingUC usecase.RoutingUsecase
	logger    *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		routingUC: params.RoutingUC,
		logger:    params.Logger,
	}
}

// CoordinatePayload is a request-level coordinate pair
type CoordinatePayload struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// SynthesizeRouteRequest represents the request body for route synthesis
type SynthesizeRouteRequest struct {
	Start               CoordinatePayload `json:"start"`
	End                 CoordinatePayload `json:"end"`
	EmergencyPriority   bool              `json:"emergency_priority"`
	IncludeAlternatives bool              `json:"include_alternatives"`
}

// SynthesizeRoute handles building an optimized route between two points
func (h *RouteHandler) SynthesizeRoute(c echo.Context) error {
	var req SynthesizeRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	route, err := h.routingUC.Synthesize(c.Request().Context(),
		entity.GeoCoordinate{Latitude: req.Start.Latitude, Longitude: req.Start.Longitude},
		entity.GeoCoordinate{Latitude: req.End.Latitude, Longitude: req.End.Longitude},
		req.EmergencyPriority,
		req.IncludeAlternatives,
	)
	if err != nil {
		return handleAppError(err)
	}

	return response.Success(c, http.StatusOK, route, "Route synthesized successfully")
}

// handleAppError passes application errors through to the centralized
// error handler with their stack attached.
func handleAppError(err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return errors.WithStack(err)
}
