// Package service defines the ports implemented by infrastructure adapters.
package service

import (
	"context"
	"image"

	"dispatch/internal/domain/entity"

	"github.com/pkg/errors"
)

// ModelState tracks the lifecycle of a loaded detection model. It is owned
// exclusively by the inference backend; transitions are one-directional
// except Ready, which may be re-entered on reload.
type ModelState int32

const (
	// ModelStateUninitialized means Initialize has not been called yet.
	ModelStateUninitialized ModelState = iota
	// ModelStateLoading means a load attempt is in progress.
	ModelStateLoading
	// ModelStateReady means the backend accepts detection calls.
	ModelStateReady
	// ModelStateFailed means all load attempts failed; detection must go
	// directly to the heuristic path without attempting inference.
	ModelStateFailed
)

// String returns the string representation of the ModelState.
func (s ModelState) String() string {
	switch s {
	case ModelStateUninitialized:
		return "uninitialized"
	case ModelStateLoading:
		return "loading"
	case ModelStateReady:
		return "ready"
	case ModelStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Sentinel errors for the detection failure taxonomy. They travel between
// the backend and the detection use case only; callers outside the
// detection boundary never see them.
var (
	// ErrModelUnavailable signals the model artifact is missing or the
	// backend could not be constructed.
	ErrModelUnavailable = errors.New("detection model unavailable")
	// ErrPreprocessing signals the input image could not be decoded or
	// resized into a tensor.
	ErrPreprocessing = errors.New("image preprocessing failed")
	// ErrInferenceRuntime signals a failure during the forward pass.
	ErrInferenceRuntime = errors.New("inference runtime failure")
)

// InferenceBackend owns a loaded detection model and exposes a single
// inference call. A returned error from Detect means the caller should
// delegate to the heuristic detector.
type InferenceBackend interface {
	// Initialize loads the model. Idempotent; callers await it once and
	// treat the backend as process-wide shared state afterward.
	Initialize(ctx context.Context) error

	// Detect runs one forward pass over the image and decodes the best
	// target-class candidate.
	Detect(ctx context.Context, img image.Image) (entity.DetectionResult, error)

	// State returns the current model lifecycle state.
	State() ModelState

	// Degraded reports whether the backend initialized without a usable
	// model handle and detection should route to the heuristic path.
	Degraded() bool

	// Shutdown releases the native session resources.
	Shutdown(ctx context.Context) error
}

// HeuristicDetector is the lower-trust pixel-colour detector used whenever
// model-backed inference is unavailable or fails. It never returns an
// error; rasterization failures yield a deterministic negative result.
type HeuristicDetector interface {
	Detect(img image.Image) entity.DetectionResult
}
