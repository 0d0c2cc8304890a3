package handler

import (
	"net/http"

	"dispatch/internal/delivery/http/response"
	"dispatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	DetectionUC usecase.DetectionUsecase
}

// HealthHandler reports service liveness and the active detection mode
type HealthHandler struct {
	detectionUC usecase.DetectionUsecase
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		detectionUC: params.DetectionUC,
	}
}

// Check handles the health check endpoint
func (h *HealthHandler) Check(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status":         "ok",
		"detection_mode": string(h.detectionUC.Mode()),
	}, "Service healthy")
}
