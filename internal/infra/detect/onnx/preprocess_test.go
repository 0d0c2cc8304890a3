package onnx

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareTensorChannelFirstLayout(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	data := PrepareTensor(img, 2, 2)

	require.Len(t, data, 3*2*2)

	stride := 2 * 2
	for i := 0; i < stride; i++ {
		assert.InDelta(t, 1.0, data[i], 1e-6, "red plane")
		assert.InDelta(t, 0.0, data[i+stride], 1e-6, "green plane")
		assert.InDelta(t, 0.0, data[i+2*stride], 1e-6, "blue plane")
	}
}

func TestPrepareTensorResizesToModelInput(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	data := PrepareTensor(img, 4, 4)

	require.Len(t, data, 3*4*4)
}

func TestPrepareTensorValuesInUnitRange(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{R: 200, G: 120, B: 40, A: 255})

	data := PrepareTensor(img, 3, 3)

	require.NotNil(t, data)
	for _, v := range data {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestPrepareTensorRejectsUnusableInput(t *testing.T) {
	t.Parallel()

	assert.Nil(t, PrepareTensor(nil, 4, 4))
	assert.Nil(t, PrepareTensor(image.NewRGBA(image.Rect(0, 0, 0, 0)), 4, 4))
	assert.Nil(t, PrepareTensor(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, 4))
}
