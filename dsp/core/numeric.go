package core

import "math"

const (
	defaultEpsilon = 1e-12

	// denormalThreshold is well above the float32 and float64 subnormal
	// ranges, so values that pass through it are always normal numbers.
	denormalThreshold = 1e-30
)

// Clamp limits value to the inclusive range [lo, hi].
// NaN maps to lo.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value > hi {
		return hi
	}

	if value >= lo {
		return value
	}

	return lo
}

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	return min(max(value, lo), hi)
}

// MapRange linearly maps value from [srcLo, srcHi] onto [dstLo, dstHi].
// The result is not clamped; a degenerate source range returns dstLo.
func MapRange(value, srcLo, srcHi, dstLo, dstHi float64) float64 {
	span := srcHi - srcLo
	if span == 0 {
		return dstLo
	}

	return dstLo + (value-srcLo)/span*(dstHi-dstLo)
}

// NearlyEqual reports whether a and b are equal within eps, using a relative
// comparison for large magnitudes.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))

	return diff/largest <= eps
}

// FlushDenormals converts tiny values to exact zero.
// Long feedback decays otherwise drift into the subnormal range, where
// arithmetic is dramatically slower on most FPUs.
func FlushDenormals(x float64) float64 {
	if x > -denormalThreshold && x < denormalThreshold {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
