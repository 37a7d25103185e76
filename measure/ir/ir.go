package ir

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrSilentIR          = errors.New("ir: impulse response is silent")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidCutoff     = errors.New("ir: cutoff must lie between 0 and Nyquist")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// DefaultOnsetThreshold is the onset level relative to the peak (-60 dB).
const DefaultOnsetThreshold = 1e-3

// schroederFloorDB is reported where the remaining energy is zero.
const schroederFloorDB = -200.0

// Metrics holds the results of Analyze.
type Metrics struct {
	Onset        int     // first sample at or above the onset threshold
	OnsetSeconds float64 // Onset in seconds
	PeakIndex    int     // sample index of the absolute maximum
	Peak         float64 // absolute maximum
	Energy       float64 // sum of squares over the whole response
	EDT          float64 // early decay time, 0 to -10 dB, extrapolated to -60 dB
	T20          float64 // -5 to -25 dB, extrapolated to -60 dB
	T30          float64 // -5 to -35 dB, extrapolated to -60 dB
	RT60         float64 // T30 when measurable, else T20
}

// Analyzer computes metrics for impulse responses at a fixed sample rate.
type Analyzer struct {
	SampleRate float64

	// OnsetThreshold is the onset level as a fraction of the peak.
	// Non-positive values select DefaultOnsetThreshold.
	OnsetThreshold float64
}

// NewAnalyzer creates an analyzer with the default onset threshold.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate, OnsetThreshold: DefaultOnsetThreshold}
}

// Analyze computes all metrics. Decay times are measured on the part of the
// response starting at the onset, so a predelay does not bias them.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.validate(ir); err != nil {
		return Metrics{}, err
	}

	peakIdx, peak := findPeak(ir)
	if peak == 0 {
		return Metrics{}, ErrSilentIR
	}

	onset := a.onset(ir, peak)

	m := Metrics{
		Onset:        onset,
		OnsetSeconds: float64(onset) / a.SampleRate,
		PeakIndex:    peakIdx,
		Peak:         peak,
		Energy:       energy(ir),
	}

	curve := schroeder(ir[onset:])
	m.EDT = a.decayTime(curve, 0, -10)
	m.T20 = a.decayTime(curve, -5, -25)
	m.T30 = a.decayTime(curve, -5, -35)

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// Onset returns the first sample whose magnitude reaches OnsetThreshold
// times the peak.
func (a *Analyzer) Onset(ir []float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	_, peak := findPeak(ir)
	if peak == 0 {
		return 0, ErrSilentIR
	}

	return a.onset(ir, peak), nil
}

func (a *Analyzer) onset(ir []float64, peak float64) int {
	ratio := a.OnsetThreshold
	if ratio <= 0 {
		ratio = DefaultOnsetThreshold
	}

	threshold := peak * ratio
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}

	return 0
}

// DecayCurve returns the Schroeder backward integral of ir in dB relative to
// the total energy:
//
//	S(t) = 10*log10( sum_{k>=t} h[k]^2 / sum_k h[k]^2 )
func (a *Analyzer) DecayCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return schroeder(ir), nil
}

// RT60 returns the reverberation time of ir measured from its onset.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	m, err := a.Analyze(ir)
	if err != nil {
		return 0, err
	}

	if m.RT60 == 0 {
		return 0, ErrNoDecay
	}

	return m.RT60, nil
}

// HighFrequencyRatio returns the share of the energy of ir that lies above
// cutoffHz, in [0, 1]. The response is zero-padded to a power of two and
// transformed with a single FFT.
func (a *Analyzer) HighFrequencyRatio(ir []float64, cutoffHz float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}

	if cutoffHz <= 0 || cutoffHz >= a.SampleRate/2 {
		return 0, fmt.Errorf("%w: %g Hz", ErrInvalidCutoff, cutoffHz)
	}

	size := nextPowerOfTwo(len(ir))

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0, fmt.Errorf("ir: fft plan: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("ir: fft: %w", err)
	}

	binHz := a.SampleRate / float64(size)

	var high, total float64

	for k := 0; k <= size/2; k++ {
		re, im := real(out[k]), imag(out[k])
		e := re*re + im*im

		total += e
		if float64(k)*binHz >= cutoffHz {
			high += e
		}
	}

	if total == 0 {
		return 0, ErrSilentIR
	}

	return high / total, nil
}

func (a *Analyzer) validate(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	return nil
}

// decayTime fits a line to the Schroeder curve between startDB and endDB and
// extrapolates it to -60 dB. It returns 0 when the curve never spans the
// range or does not fall.
func (a *Analyzer) decayTime(curve []float64, startDB, endDB float64) float64 {
	startIdx, endIdx := -1, -1

	for i, v := range curve {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}

		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}

	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64

	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(endIdx - startIdx + 1)

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	// dB per sample
	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

func schroeder(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var acc float64
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		curve[i] = acc
	}

	if len(curve) == 0 || curve[0] <= 0 {
		return curve
	}

	total := curve[0]
	for i, v := range curve {
		if v <= 0 {
			curve[i] = schroederFloorDB
			continue
		}

		curve[i] = 10 * math.Log10(v/total)
	}

	return curve
}

func findPeak(ir []float64) (int, float64) {
	idx, peak := 0, 0.0

	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}

	return idx, peak
}

func energy(ir []float64) float64 {
	var e float64
	for _, v := range ir {
		e += v * v
	}

	return e
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
