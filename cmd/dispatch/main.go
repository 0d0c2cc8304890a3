package main

import (
	"context"
	"log/slog"
	"os"

	"dispatch/config"
	"dispatch/internal/delivery"
	"dispatch/internal/delivery/http"
	"dispatch/internal/delivery/http/router/handler"
	"dispatch/internal/domain/service"
	"dispatch/internal/infra/artifact"
	"dispatch/internal/infra/detect/heuristic"
	"dispatch/internal/infra/detect/onnx"
	"dispatch/internal/infra/geo"
	logs "dispatch/internal/infra/log"
	"dispatch/internal/usecase"
	"dispatch/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			initializeDetection,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		artifact.NewBlobStore,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newRoutingConfig,
			geo.NewTrafficModel,
			newInferenceBackend,
			newHeuristicDetector,
		),
	)
}

// newRoutingConfig exposes the optional routing section; consumers fall
// back to defaults when it is absent.
func newRoutingConfig(cfg *config.Config) *config.RoutingConfig {
	return cfg.Routing
}

// newInferenceBackend creates the model-backed detector when detection is
// configured and enabled; a nil backend means heuristic-only operation.
func newInferenceBackend(cfg *config.Config, artifacts service.ArtifactStore, logger *slog.Logger) (service.InferenceBackend, error) {
	if cfg.Detection == nil || !cfg.Detection.Enabled {
		return nil, nil // model-backed detection is optional
	}

	return onnx.NewSession(cfg.Detection, artifacts, logger), nil
}

func newHeuristicDetector(logger *slog.Logger) service.HeuristicDetector {
	return heuristic.New(logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDetectionService,
			impl.NewRoutingService,
			impl.NewETAService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDetectionHandler,
			handler.NewRouteHandler,
			handler.NewETAHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// initializeDetection binds the detection chain to the application
// lifecycle: mode selection at startup, resource release at shutdown.
func initializeDetection(lc fx.Lifecycle, detectionUC usecase.DetectionUsecase) {
	lc.Append(fx.Hook{
		OnStart: detectionUC.Initialize,
		OnStop:  detectionUC.Shutdown,
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
