package onnx

import "gonum.org/v1/gonum/mat"

// numericRuntimeReady runs a small matrix product as the secondary
// readiness probe: when the model backend cannot be constructed but the
// numeric runtime is healthy, the session may still report ready in
// degraded mode.
func numericRuntimeReady() bool {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{5, 6, 7, 8})

	var product mat.Dense
	product.Mul(a, b)

	return product.At(0, 0) == 19 && product.At(1, 1) == 50
}
