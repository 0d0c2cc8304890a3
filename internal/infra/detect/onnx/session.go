// Package onnx implements model-backed ambulance detection on top of the
// onnxruntime inference engine.
package onnx

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

const (
	defaultInputWidth  = 640
	defaultInputHeight = 640

	inputName  = "images"
	outputName = "output0"
)

// Session owns the lifecycle of one loaded detection model. A single
// session handle must not run two inferences concurrently, so forward
// passes are serialized behind a mutex; state transitions happen only
// during Initialize and Shutdown.
type Session struct {
	modelPath   string
	libraryPath string
	inputWidth  int
	inputHeight int

	artifacts service.ArtifactStore
	logger    *slog.Logger
	decoder   *Decoder

	initOnce sync.Once
	initErr  error

	state    atomic.Int32
	degraded bool

	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
}

// NewSession creates an uninitialized inference backend for the given
// detection configuration.
func NewSession(cfg *config.DetectionConfig, artifacts service.ArtifactStore, logger *slog.Logger) *Session {
	width := cfg.InputWidth
	if width <= 0 {
		width = defaultInputWidth
	}
	height := cfg.InputHeight
	if height <= 0 {
		height = defaultInputHeight
	}

	s := &Session{
		modelPath:   cfg.ModelPath,
		libraryPath: cfg.LibraryPath,
		inputWidth:  width,
		inputHeight: height,
		artifacts:   artifacts,
		logger:      logger,
		decoder:     NewDecoder(cfg.ConfidenceThreshold, cfg.TargetClasses, nil),
	}
	s.state.Store(int32(service.ModelStateUninitialized))

	return s
}

// Initialize loads the model artifact and constructs the runtime session.
// Idempotent: subsequent calls return the first outcome.
func (s *Session) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.initialize(ctx)
	})

	return s.initErr
}

func (s *Session) initialize(ctx context.Context) error {
	s.setState(service.ModelStateLoading)

	// Existence probe, then backend construction
	localPath, err := s.artifacts.Resolve(ctx, s.modelPath)
	if err == nil {
		err = s.openBackend(localPath)
	}
	if err == nil {
		s.setState(service.ModelStateReady)
		s.logger.Info("Detection model loaded",
			slog.String("model", s.modelPath),
			slog.Int("input_width", s.inputWidth),
			slog.Int("input_height", s.inputHeight),
		)

		return nil
	}

	// Degraded readiness: the numeric runtime still works, so the session
	// reports ready while routing every detection to the heuristic path.
	if numericRuntimeReady() {
		s.degraded = true
		s.setState(service.ModelStateReady)
		s.logger.Warn("Detection model unavailable, continuing in degraded mode",
			slog.Any("error", err),
		)

		return nil
	}

	s.setState(service.ModelStateFailed)

	return errors.Wrap(err, "initialize inference backend")
}

func (s *Session) openBackend(modelPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("inference backend panic: %v", r)
		}
	}()

	if s.libraryPath != "" {
		ort.SetSharedLibraryPath(s.libraryPath)
	}
	if !ort.IsInitialized() {
		if initErr := ort.InitializeEnvironment(); initErr != nil {
			return errors.Wrap(initErr, "initialize onnxruntime environment")
		}
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return errors.Wrap(err, "create session options")
	}
	defer options.Destroy()

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		options,
	)
	if err != nil {
		return errors.Wrap(err, "create inference session")
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return nil
}

// Detect runs one forward pass and decodes the best target-class
// candidate. Every returned error belongs to the detection failure
// taxonomy and instructs the caller to delegate to the heuristic.
func (s *Session) Detect(ctx context.Context, img image.Image) (entity.DetectionResult, error) {
	if s.State() != service.ModelStateReady || s.degraded {
		return entity.DetectionResult{}, service.ErrModelUnavailable
	}

	input := PrepareTensor(img, s.inputWidth, s.inputHeight)
	if input == nil {
		return entity.DetectionResult{}, service.ErrPreprocessing
	}

	output, err := s.run(input)
	if err != nil {
		s.logger.Error("Inference failed", slog.Any("error", err))

		return entity.DetectionResult{}, service.ErrInferenceRuntime
	}

	return s.decoder.Decode(output), nil
}

// run executes the forward pass. Tensor buffers are destroyed on every
// exit path, including panics inside the native runtime.
func (s *Session) run(input []float32) (out []float32, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, errors.New("no inference session handle")
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("inference panic: %v", r)
		}
	}()

	shape := ort.NewShape(1, channels, int64(s.inputHeight), int64(s.inputWidth))
	inputTensor, err := ort.NewTensor(shape, input)
	if err != nil {
		return nil, errors.Wrap(err, "create input tensor")
	}
	defer inputTensor.Destroy()

	outputs := []ort.Value{nil}
	if runErr := s.session.Run([]ort.Value{inputTensor}, outputs); runErr != nil {
		return nil, errors.Wrap(runErr, "run forward pass")
	}
	if outputs[0] != nil {
		defer outputs[0].Destroy()
	}

	outputTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("unexpected output tensor type")
	}

	// Copy out of the native buffer before it is destroyed
	data := outputTensor.GetData()
	out = make([]float32, len(data))
	copy(out, data)

	return out, nil
}

// State returns the current model lifecycle state.
func (s *Session) State() service.ModelState {
	return service.ModelState(s.state.Load())
}

// Degraded reports whether initialization fell back to the numeric
// readiness probe without a usable model handle.
func (s *Session) Degraded() bool {
	return s.degraded
}

// Shutdown releases the native session resources.
func (s *Session) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}

	err := s.session.Destroy()
	s.session = nil
	if err != nil {
		return errors.Wrap(err, "destroy inference session")
	}

	s.logger.Info("Inference session shut down")

	return nil
}

func (s *Session) setState(state service.ModelState) {
	s.state.Store(int32(state))
}
