package reverb

import "github.com/cwbudde/algo-vecmath/cpu"

// Strategy selects how filter blocks are executed. Both strategies operate
// on the same filter state and may be switched between blocks.
type Strategy int

const (
	// StrategyScalar processes every filter strictly sample by sample.
	StrategyScalar Strategy = iota

	// StrategyVectorized batches delay-line gather/scatter and the
	// feed-forward arithmetic into block kernels.
	StrategyVectorized
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyScalar:
		return "scalar"
	case StrategyVectorized:
		return "vectorized"
	default:
		return "unknown"
	}
}

// StrategyFor maps the use-vectorized-path parameter onto a Strategy.
func StrategyFor(useVectorized bool) Strategy {
	if useVectorized {
		return StrategyVectorized
	}

	return StrategyScalar
}

// VectorizedAvailable reports whether the block kernels behind
// StrategyVectorized dispatch to SIMD code on this CPU. The vectorized
// strategy is always usable; without SIMD it runs the generic kernels.
func VectorizedAvailable() bool {
	features := cpu.DetectFeatures()
	if features.ForceGeneric {
		return false
	}

	return features.HasAVX2 || features.HasSSE2 || features.HasNEON
}

// DefaultStrategy returns StrategyVectorized when SIMD kernels are available
// and StrategyScalar otherwise.
func DefaultStrategy() Strategy {
	return StrategyFor(VectorizedAvailable())
}
