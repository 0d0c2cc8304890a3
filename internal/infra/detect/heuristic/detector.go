// Package heuristic provides the colour-profile ambulance detector used
// when no model-backed inference session is available.
package heuristic

import (
	"image"
	"image/draw"
	"log/slog"
	"math"

	"dispatch/internal/domain/entity"
)

const (
	// Pixel classification thresholds on 8-bit channels. Accent pixels are
	// the saturated red of emergency livery, base pixels the white body
	// panels.
	accentRedMin   = 200
	accentGreenMax = 100
	accentBlueMax  = 100
	baseChannelMin = 200

	// Minimum pixel ratios and score for a positive verdict.
	accentRatioMin = 0.05
	baseRatioMin   = 0.15
	confidenceMin  = 0.3

	confidenceCap = 0.8

	accentWeight = 4.0
	baseWeight   = 2.0

	boxInset = 20

	detectionLabel = "ambulance (color detection)"
	failedLabel    = "detection failed"
)

// Detector scans pixel colour ratios for the red-on-white profile of
// emergency vehicles. It never returns an error: any failure degrades to
// a not-found result so the detection chain always produces a verdict.
type Detector struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Detector {
	return &Detector{logger: logger}
}

// Detect classifies every pixel as accent, base, or neither and scores
// the frame from the two ratios. The score is a weighted sum capped at
// 0.8 since a colour profile alone can never match model confidence.
func (d *Detector) Detect(img image.Image) (result entity.DetectionResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Heuristic detection panic", slog.Any("error", r))
			result = failedResult()
		}
	}()

	if img == nil {
		return failedResult()
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return failedResult()
	}

	rgba := toRGBA(img)

	var accentCount, baseCount int
	for y := 0; y < height; y++ {
		rowOffset := y * rgba.Stride
		for x := 0; x < width; x++ {
			offset := rowOffset + x*4
			r := rgba.Pix[offset]
			g := rgba.Pix[offset+1]
			b := rgba.Pix[offset+2]

			switch {
			case r > accentRedMin && g < accentGreenMax && b < accentBlueMax:
				accentCount++
			case r > baseChannelMin && g > baseChannelMin && b > baseChannelMin:
				baseCount++
			}
		}
	}

	total := float64(width * height)
	accentRatio := float64(accentCount) / total
	baseRatio := float64(baseCount) / total

	confidence := math.Min(confidenceCap, accentWeight*accentRatio+baseWeight*baseRatio)
	found := accentRatio > accentRatioMin && baseRatio > baseRatioMin && confidence > confidenceMin

	if !found {
		return entity.DetectionResult{Found: false, Confidence: confidence, Label: "no detection"}
	}

	return entity.DetectionResult{
		Found:      true,
		Confidence: confidence,
		Label:      detectionLabel,
		Box: &entity.BoundingBox{
			X1: boxInset,
			Y1: boxInset,
			X2: width - boxInset,
			Y2: height - boxInset,
		},
	}
}

// toRGBA draws the source into an RGBA raster so pixel access is a flat
// byte scan regardless of the decoded image type.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return rgba
}

func failedResult() entity.DetectionResult {
	return entity.DetectionResult{Found: false, Confidence: 0, Label: failedLabel}
}
