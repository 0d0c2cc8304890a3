// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"dispatch/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DetectionHandler *handler.DetectionHandler
	RouteHandler     *handler.RouteHandler
	ETAHandler       *handler.ETAHandler
	HealthHandler    *handler.HealthHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	detectionHandler *handler.DetectionHandler
	routeHandler     *handler.RouteHandler
	etaHandler       *handler.ETAHandler
	healthHandler    *handler.HealthHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		detectionHandler: params.DetectionHandler,
		routeHandler:     params.RouteHandler,
		etaHandler:       params.ETAHandler,
		healthHandler:    params.HealthHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.healthHandler.Check)

	api := e.Group("/api")
	{
		api.POST("/detect", r.detectionHandler.Detect)
		api.POST("/routes", r.routeHandler.SynthesizeRoute)
		api.POST("/eta", r.etaHandler.Estimate)
	}
}
