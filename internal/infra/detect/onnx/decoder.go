package onnx

import (
	"math"

	"dispatch/internal/domain/entity"

	"gonum.org/v1/gonum/floats"
)

const (
	boxFields = 4

	// defaultConfidenceThreshold is the minimum class score accepted when
	// no threshold is configured.
	defaultConfidenceThreshold = 0.35

	// defaultTargetClass is the COCO "truck" class, standing in for
	// ambulance-like vehicles since the label set has no ambulance class.
	defaultTargetClass = 7

	noDetectionLabel = "no detection"
)

// candidate is one decoded prediction row. Candidates never leave this
// package; only DetectionResult crosses the detection boundary.
type candidate struct {
	box     [boxFields]float32
	classID int
	score   float64
}

// Decoder turns a raw prediction buffer shaped [N, 4+C] into the single
// best target-class detection. Pure over its input; safe for concurrent
// use.
type Decoder struct {
	threshold  float64
	targets    map[int]struct{}
	classNames []string
}

// NewDecoder builds a decoder. Zero threshold, empty target set, or empty
// class table fall back to the COCO defaults.
func NewDecoder(threshold float64, targetClasses []int, classNames []string) *Decoder {
	if threshold <= 0 {
		threshold = defaultConfidenceThreshold
	}
	if len(targetClasses) == 0 {
		targetClasses = []int{defaultTargetClass}
	}
	if len(classNames) == 0 {
		classNames = cocoClassNames[:]
	}

	targets := make(map[int]struct{}, len(targetClasses))
	for _, id := range targetClasses {
		targets[id] = struct{}{}
	}

	return &Decoder{
		threshold:  threshold,
		targets:    targets,
		classNames: classNames,
	}
}

// Decode scans every prediction row, keeps rows whose argmax class score
// clears the threshold and whose class is a target, and reports the
// single highest-scoring survivor. This is a best-of-one selection, not
// box suppression: when several target boxes appear in one frame only the
// most confident is reported.
func (d *Decoder) Decode(predictions []float32) entity.DetectionResult {
	stride := boxFields + len(d.classNames)
	rows := len(predictions) / stride
	if rows == 0 || len(predictions)%stride != 0 {
		return noDetection()
	}

	scores := make([]float64, len(d.classNames))
	best := candidate{classID: -1}

	for row := 0; row < rows; row++ {
		offset := row * stride
		for i, s := range predictions[offset+boxFields : offset+stride] {
			scores[i] = float64(s)
		}

		classID := floats.MaxIdx(scores)
		score := scores[classID]
		if score <= d.threshold {
			continue
		}
		if _, ok := d.targets[classID]; !ok {
			continue
		}

		if score > best.score {
			best = candidate{
				box:     [boxFields]float32(predictions[offset : offset+boxFields]),
				classID: classID,
				score:   score,
			}
		}
	}

	if best.classID < 0 {
		return noDetection()
	}

	return entity.DetectionResult{
		Found:      true,
		Confidence: clampUnit(best.score),
		Label:      d.classNames[best.classID],
		Box: &entity.BoundingBox{
			X1: int(math.Round(float64(best.box[0]))),
			Y1: int(math.Round(float64(best.box[1]))),
			X2: int(math.Round(float64(best.box[2]))),
			Y2: int(math.Round(float64(best.box[3]))),
		},
	}
}

func noDetection() entity.DetectionResult {
	return entity.DetectionResult{Found: false, Confidence: 0, Label: noDetectionLabel}
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
