package onnx

import (
	"image"

	"github.com/nfnt/resize"
)

// channels is the colour depth the detection model expects.
const channels = 3

// PrepareTensor converts a decoded raster image into the flat float32
// buffer for a [1, 3, height, width] model input: bilinear resize when the
// source dimensions differ, [0,1] normalization, and channel-last to
// channel-first reordering. Returns nil when the image cannot be turned
// into a tensor; the caller must treat nil as a preprocessing failure and
// fall back. Intermediate buffers are left for the collector once the
// returned tensor is built.
func PrepareTensor(img image.Image, width, height int) []float32 {
	if img == nil || width <= 0 || height <= 0 {
		return nil
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil
	}

	if bounds.Dx() != width || bounds.Dy() != height {
		img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
		if img == nil {
			return nil
		}
		bounds = img.Bounds()
	}

	data := make([]float32, channels*width*height)
	stride := width * height

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data[idx] = float32(r>>8) / 255.0
			data[idx+stride] = float32(g>>8) / 255.0
			data[idx+2*stride] = float32(b>>8) / 255.0
			idx++
		}
	}

	return data
}
