package handler

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"

	deliverycontext "dispatch/internal/delivery/context"
	"dispatch/internal/delivery/http/response"
	"dispatch/internal/domain/entity"
	"dispatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const imageFormField = "image"

// DetectionHandlerParams holds dependencies for DetectionHandler, injected by Fx.
type DetectionHandlerParams struct {
	fx.In

	DetectionUC usecase.DetectionUsecase
	Logger      *slog.Logger
}

// DetectionHandler holds dependencies for detection-related handlers
type DetectionHandler struct {
	detectionUC usecase.DetectionUsecase
	logger      *slog.Logger
}

// NewDetectionHandler is the constructor for DetectionHandler
func NewDetectionHandler(params DetectionHandlerParams) *DetectionHandler {
	return &DetectionHandler{
		detectionUC: params.DetectionUC,
		logger:      params.Logger,
	}
}

// DetectionResponse wraps the detection verdict with the path that
// produced it.
type DetectionResponse struct {
	Result entity.DetectionResult `json:"result"`
	Mode   string                 `json:"mode"`
}

// Detect accepts a multipart image upload and runs the detection chain.
// Detection failures never surface as HTTP errors; only unreadable
// uploads do.
func (h *DetectionHandler) Detect(c echo.Context) error {
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		return response.BadRequest(c, "MISSING_IMAGE", "An image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "MISSING_IMAGE", "The image file could not be opened")
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return response.BadRequest(c, "UNDECODABLE_IMAGE", "The uploaded file is not a decodable image")
	}

	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	result := h.detectionUC.Detect(ctx, img)

	logger.Info("Detection completed",
		slog.String("format", format),
		slog.Bool("found", result.Found),
		slog.Float64("confidence", result.Confidence),
		slog.String("mode", string(h.detectionUC.Mode())),
	)

	return response.Success(c, http.StatusOK, DetectionResponse{
		Result: result,
		Mode:   string(h.detectionUC.Mode()),
	}, "Detection completed")
}
