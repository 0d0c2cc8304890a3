package handler

import (
	"log/slog"
	"net/http"

	"dispatch/internal/delivery/http/response"
	"dispatch/internal/domain/entity"
	"dispatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ETAHandlerParams holds dependencies for ETAHandler, injected by Fx.
type ETAHandlerParams struct {
	fx.In

	ETAUC  usecase.ETAUsecase
	Logger *slog.Logger
}

// ETAHandler holds dependencies for arrival-time handlers
type ETAHandler struct {
	etaUC  usecase.ETAUsecase
	logger *slog.Logger
}

// NewETAHandler is the constructor for ETAHandler
func NewETAHandler(params ETAHandlerParams) *ETAHandler {
	return &ETAHandler{
		etaUC:  params.ETAUC,
		logger: params.Logger,
	}
}

// ETARequest represents the request body for an arrival-time estimate.
// Emergency priority defaults to true when omitted: dispatch callers ask
// for the priority estimate unless they say otherwise.
type ETARequest struct {
	Current           CoordinatePayload `json:"current"`
	Destination       CoordinatePayload `json:"destination"`
	EmergencyPriority *bool             `json:"emergency_priority,omitempty"`
}

// ETAResponse carries only the duration label
type ETAResponse struct {
	Duration string `json:"duration"`
}

// Estimate handles arrival-time estimation between two points
func (h *ETAHandler) Estimate(c echo.Context) error {
	var req ETARequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ETA input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	emergency := true
	if req.EmergencyPriority != nil {
		emergency = *req.EmergencyPriority
	}

	duration, err := h.etaUC.ETA(c.Request().Context(),
		entity.GeoCoordinate{Latitude: req.Current.Latitude, Longitude: req.Current.Longitude},
		entity.GeoCoordinate{Latitude: req.Destination.Latitude, Longitude: req.Destination.Longitude},
		emergency,
	)
	if err != nil {
		return handleAppError(err)
	}

	return response.Success(c, http.StatusOK, ETAResponse{Duration: duration}, "ETA estimated successfully")
}
