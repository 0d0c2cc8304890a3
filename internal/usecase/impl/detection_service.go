package impl

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
	"dispatch/internal/usecase"
)

// detectionService chains the model-backed inference session with the
// colour heuristic. The active mode is decided once during Initialize and
// read-only afterwards; only well-formed results ever cross this
// boundary.
type detectionService struct {
	backend   service.InferenceBackend
	heuristic service.HeuristicDetector
	logger    *slog.Logger

	initOnce sync.Once
	mode     usecase.DetectionMode
}

// NewDetectionService creates the detection chain. A nil backend means
// detection is configured heuristic-only.
func NewDetectionService(backend service.InferenceBackend, heuristic service.HeuristicDetector, logger *slog.Logger) usecase.DetectionUsecase {
	return &detectionService{
		backend:   backend,
		heuristic: heuristic,
		logger:    logger,
		mode:      usecase.DetectionModeHeuristic,
	}
}

// Initialize selects the detection mode. Model failures are absorbed
// here: the service always comes up, at worst heuristic-only.
func (s *detectionService) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		if s.backend == nil {
			s.logger.Info("Detection running heuristic-only, no model configured")

			return
		}

		if err := s.backend.Initialize(ctx); err != nil {
			s.logger.Warn("Model initialization failed, falling back to heuristic",
				slog.Any("error", err),
			)

			return
		}

		if s.backend.Degraded() {
			s.logger.Warn("Model backend degraded, serving heuristic detections")

			return
		}

		s.mode = usecase.DetectionModeModel
		s.logger.Info("Detection running model-backed",
			slog.String("state", s.backend.State().String()),
		)
	})

	return nil
}

// Detect never fails: any model error downgrades to the heuristic
// verdict for this call.
func (s *detectionService) Detect(ctx context.Context, img image.Image) entity.DetectionResult {
	if s.mode == usecase.DetectionModeModel {
		result, err := s.backend.Detect(ctx, img)
		if err == nil {
			return result
		}

		s.logger.Warn("Model detection failed, using heuristic for this frame",
			slog.Any("error", err),
		)
	}

	return s.heuristic.Detect(img)
}

func (s *detectionService) Mode() usecase.DetectionMode {
	return s.mode
}

func (s *detectionService) Shutdown(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}

	return s.backend.Shutdown(ctx)
}
