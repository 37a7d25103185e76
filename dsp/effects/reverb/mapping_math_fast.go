//go:build fastmath

package reverb

import "github.com/meko-christian/algo-approx"

// ln10 is the natural logarithm of 10, used for power-of-ten conversions.
const ln10 = 2.30258509299404568401799145468436421

// mathPow10 computes 10^x using fast approximation.
// Uses the identity: 10^x = e^(x * ln(10))
func mathPow10(x float64) float64 {
	return approx.FastExp(x * ln10)
}

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// dbToGain converts dB to linear amplitude using fast approximation.
func dbToGain(db float64) float64 {
	return mathPow10(db / 20)
}
