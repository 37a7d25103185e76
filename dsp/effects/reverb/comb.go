package reverb

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/ddxverb/dsp/core"
	"github.com/cwbudde/ddxverb/dsp/delay"
)

// CombFilter is a feedback comb with a one-pole lowpass in its feedback
// path. Per sample it reads the delayed value at the cursor before
// overwriting it, damps it, and stores input + gain*damped back, which is
// also the output.
//
// The zero value is unprepared and processes nothing.
type CombFilter struct {
	line       delay.Line
	scratch    []float64
	sampleRate float64
	gain       float64
	damp       float64
	memory     float64
	prepared   bool
}

// Prepare sizes the delay line for maxDelaySamples, sets the delay length to
// the full capacity, applies initialGain and the damping cutoff, and clears
// all state. Storage is reused when the capacity does not change.
func (c *CombFilter) Prepare(sampleRate float64, maxDelaySamples int, initialGain, dampingFreqHz float64) {
	if sampleRate <= 0 {
		sampleRate = core.DefaultSampleRate
	}

	maxDelaySamples = max(maxDelaySamples, 1)

	c.sampleRate = sampleRate
	c.line.Resize(maxDelaySamples)

	if cap(c.scratch) < maxDelaySamples {
		c.scratch = make([]float64, maxDelaySamples)
	}

	c.scratch = c.scratch[:maxDelaySamples]

	c.SetGain(initialGain)
	c.SetDampingFreq(dampingFreqHz)
	c.memory = 0
	c.prepared = true
}

// Prepared reports whether Prepare has been called.
func (c *CombFilter) Prepared() bool { return c.prepared }

// SetDelaySamples sets the loop delay, clamped to [1, capacity].
func (c *CombFilter) SetDelaySamples(n int) {
	c.line.SetLen(n)
}

// DelaySamples returns the loop delay in samples.
func (c *CombFilter) DelaySamples() int { return c.line.Len() }

// SetGain sets the feedback gain, clamped to [0, 0.99].
func (c *CombFilter) SetGain(g float64) {
	c.gain = core.Clamp(g, 0, MaxCombGain)
}

// Gain returns the feedback gain.
func (c *CombFilter) Gain() float64 { return c.gain }

// SetDampingFreq sets the feedback lowpass cutoff in Hz.
func (c *CombFilter) SetDampingFreq(freqHz float64) {
	c.damp = DampingCoefficient(freqHz, c.sampleRate)
}

// DampingCoeff returns the one-pole damping coefficient.
func (c *CombFilter) DampingCoeff() float64 { return c.damp }

// Reset clears the delay line and filter memory without releasing capacity.
func (c *CombFilter) Reset() {
	c.line.Reset()
	c.memory = 0
}

// Process runs one block under strategy s. in and out may alias.
func (c *CombFilter) Process(s Strategy, in, out []float64) {
	if s == StrategyVectorized {
		c.ProcessBlockVectorized(in, out)
		return
	}

	c.ProcessBlock(in, out)
}

// ProcessBlock filters min(len(in), len(out)) samples one at a time.
// in and out may alias.
func (c *CombFilter) ProcessBlock(in, out []float64) {
	if !c.prepared {
		return
	}

	n := min(len(in), len(out))
	g, damp, mem := c.gain, c.damp, c.memory

	for i := range n {
		delayed := c.line.Tap()
		mem = core.FlushDenormals(delayed + damp*(mem-delayed))
		y := in[i] + g*mem
		c.line.Write(y)
		out[i] = y
	}

	c.memory = mem
}

// ProcessBlockVectorized filters the block in contiguous delay-line spans:
// gather the delayed samples, run the damping recurrence over them, then
// compute input + gain*damped and scatter it back with block kernels.
// A span never exceeds the delay length, so no sample in a span depends on
// another sample of the same span.
//
// The damping recurrence itself remains sample-sequential, which keeps this
// path equal to ProcessBlock up to floating-point rounding.
func (c *CombFilter) ProcessBlockVectorized(in, out []float64) {
	if !c.prepared {
		return
	}

	n := min(len(in), len(out))
	g, damp, mem := c.gain, c.damp, c.memory

	for i := 0; i < n; {
		span := c.line.Span(n - i)
		k := len(span)

		damped := c.scratch[:k]
		copy(damped, span)

		for j, delayed := range damped {
			mem = core.FlushDenormals(delayed + damp*(mem-delayed))
			damped[j] = mem
		}

		vecmath.ScaleBlockInPlace(damped, g)
		vecmath.AddBlock(span, in[i:i+k], damped)
		copy(out[i:i+k], span)

		c.line.Advance(k)
		i += k
	}

	c.memory = mem
}
