// Package reverb implements a Schroeder reverberator: four parallel feedback
// comb filters with one-pole damping, followed by eight series allpass
// filters, fed through an input hi-cut and a predelay line.
//
// Signal flow per block:
//
//	downmix -> hi-cut -> predelay -> 4x comb (parallel, averaged)
//	        -> 8x allpass (series) -> stereo remix (right channel inverted)
//
// An Engine is prepared for a sample rate and maximum block size, then
// processes blocks in place with a Parameters snapshot. The control side can
// publish parameters through a ParamStore, which the audio side samples once
// per block.
//
// Every filter can run under two execution strategies over the same state:
// StrategyScalar processes strictly sample by sample; StrategyVectorized
// gathers contiguous delay-line spans and does the feed-forward arithmetic
// with algo-vecmath block kernels. The damping recurrence of the comb filter
// is sample-sequential in both strategies, so they agree to rounding.
//
// Process never allocates, blocks, locks or logs. Values that could drift
// into the subnormal range inside feedback loops are flushed to zero.
package reverb
