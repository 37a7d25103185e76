//go:build !fastmath

package reverb

import (
	"math"

	"github.com/cwbudde/ddxverb/dsp/core"
)

// mathPow10 computes 10^x using standard library math.
func mathPow10(x float64) float64 {
	return math.Pow(10, x)
}

// mathExp computes e^x using standard library math.
func mathExp(x float64) float64 {
	return math.Exp(x)
}

// dbToGain converts dB to linear amplitude.
func dbToGain(db float64) float64 {
	return core.DBToLinear(db)
}
