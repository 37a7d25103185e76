package reverb

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/ddxverb/dsp/core"
	"github.com/cwbudde/ddxverb/dsp/delay"
)

// AllpassFilter is a Schroeder allpass section:
//
//	out   = delayed - g*in
//	store = in + g*delayed
//
// with the delayed value read at the cursor before the store overwrites it.
//
// The zero value is unprepared and processes nothing.
type AllpassFilter struct {
	line     delay.Line
	scratch  []float64
	scratch2 []float64
	gain     float64
	prepared bool
}

// Prepare sizes the delay line for maxDelaySamples, sets the delay length to
// the full capacity, applies initialGain and clears all state.
func (a *AllpassFilter) Prepare(maxDelaySamples int, initialGain float64) {
	maxDelaySamples = max(maxDelaySamples, 1)

	a.line.Resize(maxDelaySamples)

	if cap(a.scratch) < maxDelaySamples {
		a.scratch = make([]float64, maxDelaySamples)
		a.scratch2 = make([]float64, maxDelaySamples)
	}

	a.scratch = a.scratch[:maxDelaySamples]
	a.scratch2 = a.scratch2[:maxDelaySamples]

	a.SetGain(initialGain)
	a.prepared = true
}

// Prepared reports whether Prepare has been called.
func (a *AllpassFilter) Prepared() bool { return a.prepared }

// SetDelaySamples sets the delay, clamped to [1, capacity].
func (a *AllpassFilter) SetDelaySamples(n int) {
	a.line.SetLen(n)
}

// DelaySamples returns the delay in samples.
func (a *AllpassFilter) DelaySamples() int { return a.line.Len() }

// SetGain sets the allpass gain, clamped to [-0.99, 0.99].
func (a *AllpassFilter) SetGain(g float64) {
	a.gain = core.Clamp(g, -MaxAllpassGain, MaxAllpassGain)
}

// Gain returns the allpass gain.
func (a *AllpassFilter) Gain() float64 { return a.gain }

// Reset clears the delay line without releasing capacity.
func (a *AllpassFilter) Reset() {
	a.line.Reset()
}

// Process runs one block under strategy s. in and out may alias.
func (a *AllpassFilter) Process(s Strategy, in, out []float64) {
	if s == StrategyVectorized {
		a.ProcessBlockVectorized(in, out)
		return
	}

	a.ProcessBlock(in, out)
}

// ProcessBlock filters min(len(in), len(out)) samples one at a time.
// in and out may alias.
func (a *AllpassFilter) ProcessBlock(in, out []float64) {
	if !a.prepared {
		return
	}

	n := min(len(in), len(out))
	g := a.gain

	for i := range n {
		x := in[i]
		delayed := a.line.Tap()
		a.line.Write(core.FlushDenormals(x + g*delayed))
		out[i] = delayed - g*x
	}
}

// ProcessBlockVectorized filters the block in contiguous delay-line spans
// with block kernels. The allpass has no recurrence inside a span, so this
// path matches ProcessBlock exactly.
func (a *AllpassFilter) ProcessBlockVectorized(in, out []float64) {
	if !a.prepared {
		return
	}

	n := min(len(in), len(out))
	g := a.gain

	for i := 0; i < n; {
		span := a.line.Span(n - i)
		k := len(span)
		x := in[i : i+k]

		delayed := a.scratch[:k]
		copy(delayed, span)

		vecmath.ScaleBlock(span, delayed, g)
		vecmath.AddBlockInPlace(span, x)
		flushBlock(span)

		feedforward := a.scratch2[:k]
		vecmath.ScaleBlock(feedforward, x, -g)
		vecmath.AddBlock(out[i:i+k], delayed, feedforward)

		a.line.Advance(k)
		i += k
	}
}

func flushBlock(buf []float64) {
	for i, v := range buf {
		buf[i] = core.FlushDenormals(v)
	}
}
