package reverb

import (
	"math"

	"github.com/cwbudde/ddxverb/dsp/core"
)

// Coefficient limits. Feedback gains stay strictly below 1 so no filter can
// self-oscillate.
const (
	MinCombGain    = 0.1
	MaxCombGain    = 0.99
	MaxAllpassGain = 0.99

	minDampingHz = 2000.0
	maxDampingHz = 20000.0

	minDiffusionGain = 0.3
	maxDiffusionGain = 0.7

	bassMultiplyStep = 0.05

	// hiCutThresholdDB is the attenuation below which the hi-cut stage is
	// skipped entirely.
	hiCutThresholdDB = 0.01
)

// CombFeedbackGain derives the comb feedback gain for an RT60 of
// decaySeconds given the average comb delay in seconds:
// g = clamp(10^(-3*delay/decay), 0.1, 0.99), then scaled by
// 1 + bassMultiply*0.05. The scaled gain is clamped to the same range.
func CombFeedbackGain(decaySeconds, avgDelaySeconds, bassMultiply float64) float64 {
	decay := clampParam(ParamDecay, decaySeconds)
	delaySec := math.Max(avgDelaySeconds, 0)

	gain := core.Clamp(mathPow10(-3*delaySec/decay), MinCombGain, MaxCombGain)
	gain *= 1 + clampParam(ParamBassMultiply, bassMultiply)*bassMultiplyStep

	return core.Clamp(gain, MinCombGain, MaxCombGain)
}

// DampingFrequency maps damping 0..100 % linearly onto a feedback lowpass
// cutoff from 20 kHz (bright) down to 2 kHz (dark).
func DampingFrequency(dampingPercent float64) float64 {
	pct := clampParam(ParamDamping, dampingPercent)

	return core.MapRange(pct, 0, 100, maxDampingHz, minDampingHz)
}

// DampingCoefficient returns the one-pole coefficient exp(-2*pi*f/fs) for a
// cutoff of freqHz at sampleRate. The result lies in (0, 1) for any positive
// cutoff.
func DampingCoefficient(freqHz, sampleRate float64) float64 {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		sampleRate = core.DefaultSampleRate
	}

	freq := core.Clamp(freqHz, 1, sampleRate)

	return mathExp(-2 * math.Pi * freq / sampleRate)
}

// AllpassGain maps diffusion 0..20 linearly onto an allpass gain of 0.3..0.7.
func AllpassGain(diffusion float64) float64 {
	d := clampParam(ParamDiffusion, diffusion)

	return core.MapRange(d, 0, 20, minDiffusionGain, maxDiffusionGain)
}

// HiCutCoefficient returns the input lowpass coefficient for an attenuation
// of hiCutDB: the linear gain of -hiCutDB.
func HiCutCoefficient(hiCutDB float64) float64 {
	return dbToGain(-clampParam(ParamHiCut, hiCutDB))
}

// HiCutActive reports whether the hi-cut stage runs for hiCutDB.
func HiCutActive(hiCutDB float64) bool {
	return clampParam(ParamHiCut, hiCutDB) > hiCutThresholdDB
}

// WetMix returns the wet crossfade coefficient.
func WetMix(wet float64) float64 {
	return clampParam(ParamWet, wet)
}

// PredelaySamples converts a predelay in milliseconds into whole samples,
// clamped to [0, capacity-1].
func PredelaySamples(predelayMs, sampleRate float64, capacity int) int {
	ms := clampParam(ParamPredelay, predelayMs)
	samples := int(ms * sampleRate / 1000)

	return core.ClampInt(samples, 0, max(capacity-1, 0))
}
