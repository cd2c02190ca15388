package finance

import "math"

// NormCDF returns the standard normal cumulative distribution function at x,
// Φ(x) = 0.5 + 0.5·erf(x/√2).
func NormCDF(x float64) float64 {
	return 0.5 + 0.5*math.Erf(x/math.Sqrt2)
}

// NormCDFs applies NormCDF to every element of xs and returns the results in
// a new slice.
func NormCDFs(xs []float64) []float64 {
	result := make([]float64, len(xs))
	for i, x := range xs {
		result[i] = NormCDF(x)
	}
	return result
}
