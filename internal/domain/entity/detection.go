package entity

// BoundingBox is an axis-aligned rectangle locating a detected object in
// image pixel coordinates.
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// DetectionResult is the only value returned across the detection boundary.
// Raw model candidates never leak out; failures of any kind are absorbed
// into a well-formed result with Found=false.
type DetectionResult struct {
	Found      bool         `json:"found"`
	Confidence float64      `json:"confidence"` // always within [0,1]
	Label      string       `json:"label"`
	Box        *BoundingBox `json:"bounding_box,omitempty"`
}
