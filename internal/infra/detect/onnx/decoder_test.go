package onnx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds one [4+C] prediction row for the 80-class COCO layout.
func row(box [4]float32, classID int, score float32) []float32 {
	out := make([]float32, boxFields+len(cocoClassNames))
	copy(out, box[:])
	out[boxFields+classID] = score

	return out
}

func TestDecoderPicksBestTargetCandidate(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder(0, nil, nil)

	predictions := append(
		row([4]float32{10, 10, 50, 50}, defaultTargetClass, 0.6),
		row([4]float32{100, 100, 200, 200}, defaultTargetClass, 0.9)...,
	)

	result := decoder.Decode(predictions)

	require.True(t, result.Found)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	assert.Equal(t, "truck", result.Label)
	require.NotNil(t, result.Box)
	assert.Equal(t, 100, result.Box.X1)
	assert.Equal(t, 200, result.Box.X2)
}

func TestDecoderIgnoresNonTargetClasses(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder(0, nil, nil)

	// A confident car beats a weaker truck on score, but only the truck
	// belongs to the target set.
	carClass := 2
	predictions := append(
		row([4]float32{0, 0, 10, 10}, carClass, 0.99),
		row([4]float32{5, 5, 20, 20}, defaultTargetClass, 0.5)...,
	)

	result := decoder.Decode(predictions)

	require.True(t, result.Found)
	assert.Equal(t, "truck", result.Label)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestDecoderThresholdIsStrict(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder(0, nil, nil)

	result := decoder.Decode(row([4]float32{0, 0, 10, 10}, defaultTargetClass, defaultConfidenceThreshold))

	assert.False(t, result.Found)
	assert.Equal(t, noDetectionLabel, result.Label)
	assert.Nil(t, result.Box)
}

func TestDecoderEmptyAndMalformedBuffers(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder(0, nil, nil)

	assert.False(t, decoder.Decode(nil).Found)
	assert.False(t, decoder.Decode([]float32{1, 2, 3}).Found)
}

func TestDecoderConfidenceStaysInUnitRange(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder(0, nil, nil)

	result := decoder.Decode(row([4]float32{0, 0, 10, 10}, defaultTargetClass, 1.5))

	require.True(t, result.Found)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
}

func TestDecoderCustomTargets(t *testing.T) {
	t.Parallel()

	busClass := 5
	decoder := NewDecoder(0.2, []int{busClass}, nil)

	result := decoder.Decode(row([4]float32{1, 2, 3, 4}, busClass, 0.4))

	require.True(t, result.Found)
	assert.Equal(t, "bus", result.Label)
}
