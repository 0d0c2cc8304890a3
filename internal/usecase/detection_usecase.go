package usecase

import (
	"context"
	"image"

	"dispatch/internal/domain/entity"
)

// DetectionMode identifies which detection path serves requests.
type DetectionMode string

const (
	// DetectionModeModel means the inference session is loaded and serving.
	DetectionModeModel DetectionMode = "model"
	// DetectionModeHeuristic means detections run on the colour heuristic,
	// either by configuration or after a model failure.
	DetectionModeHeuristic DetectionMode = "heuristic"
)

// DetectionUsecase defines the interface for ambulance detection
type DetectionUsecase interface {
	// Initialize prepares the detection backend. Safe to call once at
	// startup; the chosen mode is fixed from its outcome.
	Initialize(ctx context.Context) error

	// Detect runs the active detection path on a decoded image. It never
	// fails: model errors degrade to the heuristic verdict.
	Detect(ctx context.Context, img image.Image) entity.DetectionResult

	// Mode reports the active detection path.
	Mode() DetectionMode

	// Shutdown releases detection resources.
	Shutdown(ctx context.Context) error
}
