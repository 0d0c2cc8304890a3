package heuristic

import (
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector() *Detector {
	return New(slog.New(slog.DiscardHandler))
}

// fill paints a fraction of the image rows with the given colour,
// starting from startRow expressed as a fraction of the height.
func fill(img *image.RGBA, startFrac, endFrac float64, c color.RGBA) {
	bounds := img.Bounds()
	start := int(float64(bounds.Dy()) * startFrac)
	end := int(float64(bounds.Dy()) * endFrac)
	for y := start; y < end; y++ {
		for x := 0; x < bounds.Dx(); x++ {
			img.Set(x, y, c)
		}
	}
}

func TestDetectRedOnWhiteProfile(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	// 10% saturated red accent over a 90% white body
	fill(img, 0, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fill(img, 0, 0.1, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	result := newTestDetector().Detect(img)

	require.True(t, result.Found)
	assert.Equal(t, "ambulance (color detection)", result.Label)
	assert.Greater(t, result.Confidence, 0.3)
	require.NotNil(t, result.Box)
	assert.Equal(t, 20, result.Box.X1)
	assert.Equal(t, 20, result.Box.Y1)
	assert.Equal(t, 80, result.Box.X2)
	assert.Equal(t, 80, result.Box.Y2)
}

func TestDetectConfidenceCappedAtPointEight(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	// Half red, half white pushes the weighted sum well past the cap
	fill(img, 0, 0.5, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	fill(img, 0.5, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	result := newTestDetector().Detect(img)

	require.True(t, result.Found)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
}

func TestDetectRejectsUnrelatedScene(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill(img, 0, 1, color.RGBA{R: 30, G: 160, B: 60, A: 255})

	result := newTestDetector().Detect(img)

	assert.False(t, result.Found)
	assert.Nil(t, result.Box)
}

func TestDetectRequiresBothColourFamilies(t *testing.T) {
	t.Parallel()

	// All red, no white body: accent alone must not trigger
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill(img, 0, 1, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	result := newTestDetector().Detect(img)

	assert.False(t, result.Found)
}

func TestDetectUnusableInput(t *testing.T) {
	t.Parallel()

	detector := newTestDetector()

	result := detector.Detect(nil)
	assert.False(t, result.Found)
	assert.Equal(t, "detection failed", result.Label)
	assert.Zero(t, result.Confidence)

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	assert.Equal(t, "detection failed", detector.Detect(empty).Label)
}

func TestDetectNonRGBASource(t *testing.T) {
	t.Parallel()

	img := image.NewYCbCr(image.Rect(0, 0, 32, 32), image.YCbCrSubsampleRatio420)

	result := newTestDetector().Detect(img)

	assert.False(t, result.Found)
}
