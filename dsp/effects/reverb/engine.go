package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/ddxverb/dsp/core"
)

const (
	numCombs     = 4
	numAllpasses = 8
	maxChannels  = 2

	// Nominal delays are tuned at this rate and scaled to the prepared rate.
	referenceSampleRate = 48000.0

	maxCombDelaySeconds    = 0.1
	maxAllpassDelaySeconds = 0.05

	initialCombGain    = 0.7
	initialDampingHz   = 5000.0
	initialAllpassGain = 0.5

	tailLengthSeconds = 20.0
)

// Prime-ish delay lengths in samples at 48 kHz.
var (
	nominalCombDelays    = [numCombs]int{1116, 1188, 1277, 1356}
	nominalAllpassDelays = [numAllpasses]int{556, 441, 313, 391, 347, 113, 37, 59}
)

// ErrInvalidSampleRate is returned by Prepare for a non-positive or
// non-finite sample rate.
var ErrInvalidSampleRate = errors.New("reverb: sample rate must be positive and finite")

// Engine is the complete reverberator. It owns every filter and scratch
// buffer; nothing is shared between engines.
//
// The zero value is a valid, unprepared engine: Process leaves buffers
// untouched until Prepare succeeds. Prepare and Reset must not run
// concurrently with Process.
type Engine struct {
	cfg      core.ProcessorConfig
	prepared bool

	combs     [numCombs]CombFilter
	allpasses [numAllpasses]AllpassFilter
	predelay  PredelayLine
	hiCut     hiCutFilter

	dry     [maxChannels][]float32
	mono    []float64
	combOut []float64
	wet     []float64
}

// NewEngine returns an engine prepared with the given options
// (default 48 kHz, 1024-sample blocks).
func NewEngine(opts ...core.ProcessorOption) (*Engine, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	e := &Engine{}
	if err := e.Prepare(cfg.SampleRate, cfg.BlockSize); err != nil {
		return nil, err
	}

	return e, nil
}

// Prepare (re)configures the engine for sampleRate and blocks of up to
// maxBlockSize samples. A non-positive maxBlockSize keeps the previous (or
// default) size. All filter state is cleared and every nominal delay is
// rescaled by sampleRate/48000.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	prev := e.cfg.BlockSize
	if prev <= 0 {
		prev = core.DefaultBlockSize
	}

	e.cfg = core.ApplyProcessorOptions(
		core.WithBlockSize(prev),
		core.WithBlockSize(maxBlockSize),
		core.WithSampleRate(sampleRate),
	)

	e.predelay.Prepare(sampleRate)

	combCapacity := int(sampleRate * maxCombDelaySeconds)
	for i := range e.combs {
		e.combs[i].Prepare(sampleRate, combCapacity, initialCombGain, initialDampingHz)
		e.combs[i].SetDelaySamples(scaleDelay(nominalCombDelays[i], sampleRate))
	}

	allpassCapacity := int(sampleRate * maxAllpassDelaySeconds)
	for i := range e.allpasses {
		e.allpasses[i].Prepare(allpassCapacity, initialAllpassGain)
		e.allpasses[i].SetDelaySamples(scaleDelay(nominalAllpassDelays[i], sampleRate))
	}

	block := e.cfg.BlockSize
	for c := range e.dry {
		e.dry[c] = core.EnsureLen32(e.dry[c], block)
	}

	e.mono = core.EnsureLen(e.mono, block)
	e.combOut = core.EnsureLen(e.combOut, block)
	e.wet = core.EnsureLen(e.wet, block)

	e.hiCut.reset()
	e.prepared = true

	return nil
}

// Reset clears all delay and filter memory without reallocating.
func (e *Engine) Reset() {
	for i := range e.combs {
		e.combs[i].Reset()
	}

	for i := range e.allpasses {
		e.allpasses[i].Reset()
	}

	e.predelay.Reset()
	e.hiCut.reset()
}

// Prepared reports whether Prepare has succeeded.
func (e *Engine) Prepared() bool { return e.prepared }

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (e *Engine) SampleRate() float64 {
	if !e.prepared {
		return 0
	}

	return e.cfg.SampleRate
}

// MaxBlockSize returns the prepared maximum block size, or 0 before Prepare.
func (e *Engine) MaxBlockSize() int {
	if !e.prepared {
		return 0
	}

	return e.cfg.BlockSize
}

// TailLengthSeconds is how long output can keep ringing after the input
// falls silent at the longest decay setting.
func (e *Engine) TailLengthSeconds() float64 { return tailLengthSeconds }

// CombDelays returns the scaled comb delay lengths in samples.
func (e *Engine) CombDelays() [numCombs]int {
	var out [numCombs]int
	for i := range e.combs {
		out[i] = e.combs[i].DelaySamples()
	}

	return out
}

// AllpassDelays returns the scaled allpass delay lengths in samples.
func (e *Engine) AllpassDelays() [numAllpasses]int {
	var out [numAllpasses]int
	for i := range e.allpasses {
		out[i] = e.allpasses[i].DelaySamples()
	}

	return out
}

// PredelaySamples returns the predelay applied by the most recent block.
func (e *Engine) PredelaySamples() int { return e.predelay.DelaySamples() }

// Process applies the reverb to buf in place. buf holds one slice per
// channel; one or two channels are processed and any further channels are
// left untouched. Channel 0 receives dry*(1-wet) + reverb*wet, channel 1
// dry*(1-wet) - reverb*wet.
//
// With p.Bypass set, or before Prepare, buf is not modified. Blocks longer
// than the prepared maximum are processed in prepared-size pieces.
func (e *Engine) Process(buf [][]float32, p Parameters) {
	e.ProcessChannels(buf, len(buf), p)
}

// ProcessChannels is Process for a layout whose first inputs channels carry
// signal and whose remaining channels are outputs only. With one input and a
// stereo buf the reverb is fed channel 0 unchanged and both outputs get the
// remix; output-only channels start silent, so their dry part is zero.
// inputs is clamped to [1, len(buf)].
//
// Output-only channels are cleared even when p.Bypass is set.
func (e *Engine) ProcessChannels(buf [][]float32, inputs int, p Parameters) {
	if !e.prepared || len(buf) == 0 {
		return
	}

	channels := min(len(buf), maxChannels)
	inputs = core.ClampInt(inputs, 1, channels)

	n := len(buf[0])
	for c := 1; c < channels; c++ {
		n = min(n, len(buf[c]))
	}

	for c := inputs; c < channels; c++ {
		clear(buf[c][:n])
	}

	if p.Bypass {
		return
	}

	p = p.Clamped()
	e.applyParameters(p)

	strategy := p.Strategy()
	hiCut := HiCutActive(p.HiCutDB)
	hiCutCoeff := HiCutCoefficient(p.HiCutDB)
	wet := WetMix(p.Wet)

	block := e.cfg.BlockSize
	for off := 0; off < n; off += block {
		end := min(off+block, n)
		e.processBlock(buf[:channels], inputs, off, end, strategy, hiCut, hiCutCoeff, wet)
	}
}

func (e *Engine) applyParameters(p Parameters) {
	e.predelay.SetDelayMs(p.PredelayMs)

	combGain := CombFeedbackGain(p.DecaySeconds, averageCombDelaySeconds(), p.BassMultiply)
	dampingHz := DampingFrequency(p.DampingPercent)

	for i := range e.combs {
		e.combs[i].SetDampingFreq(dampingHz)
		e.combs[i].SetGain(combGain)
	}

	apGain := AllpassGain(p.Diffusion)
	for i := range e.allpasses {
		e.allpasses[i].SetGain(apGain)
	}
}

func (e *Engine) processBlock(buf [][]float32, inputs, off, end int, s Strategy, hiCut bool, hiCutCoeff, wet float64) {
	k := end - off
	mono := e.mono[:k]

	for c := range buf {
		copy(e.dry[c][:k], buf[c][off:end])
	}

	if inputs == 1 {
		for i, x := range e.dry[0][:k] {
			mono[i] = float64(x)
		}
	} else {
		left, right := e.dry[0][:k], e.dry[1][:k]
		for i := range mono {
			mono[i] = (float64(left[i]) + float64(right[i])) * 0.5
		}
	}

	if hiCut {
		e.hiCut.process(mono, hiCutCoeff)
	}

	e.predelay.ProcessBlock(mono, mono)

	sum := e.wet[:k]
	e.processCombs(s, mono, sum)

	for i := range e.allpasses {
		e.allpasses[i].Process(s, sum, sum)
	}

	dryGain := 1 - wet
	for c := range buf {
		wetGain := wet
		if c == 1 {
			wetGain = -wet
		}

		out := buf[c][off:end]
		dry := e.dry[c][:k]

		for i := range out {
			out[i] = float32(float64(dry[i])*dryGain + sum[i]*wetGain)
		}
	}
}

// processCombs runs every comb on the same input and writes their average
// into sum.
func (e *Engine) processCombs(s Strategy, in, sum []float64) {
	tmp := e.combOut[:len(in)]

	e.combs[0].Process(s, in, sum)

	for i := 1; i < numCombs; i++ {
		e.combs[i].Process(s, in, tmp)

		if s == StrategyVectorized {
			vecmath.AddBlockInPlace(sum, tmp)
			continue
		}

		for j := range sum {
			sum[j] += tmp[j]
		}
	}

	const scale = 1.0 / numCombs
	if s == StrategyVectorized {
		vecmath.ScaleBlockInPlace(sum, scale)
		return
	}

	for j := range sum {
		sum[j] *= scale
	}
}

func scaleDelay(nominal int, sampleRate float64) int {
	return int(float64(nominal) * sampleRate / referenceSampleRate)
}

// averageCombDelaySeconds is the mean comb loop time. Delays scale with the
// sample rate, so the time is the same at every rate.
func averageCombDelaySeconds() float64 {
	total := 0
	for _, d := range nominalCombDelays {
		total += d
	}

	return float64(total) / numCombs / referenceSampleRate
}
