package reverb

import (
	"github.com/cwbudde/ddxverb/dsp/core"
	"github.com/cwbudde/ddxverb/dsp/delay"
)

// maxPredelaySeconds bounds the predelay line capacity.
const maxPredelaySeconds = 0.5

// PredelayLine delays the signal by a whole number of samples before it
// reaches the filter bank. The delay is set once per block; a change takes
// effect abruptly, without crossfading.
//
// The zero value is unprepared and processes nothing.
type PredelayLine struct {
	line         delay.Line
	sampleRate   float64
	delaySamples int
	prepared     bool
}

// Prepare sizes the line for 500 ms at sampleRate and clears it.
func (p *PredelayLine) Prepare(sampleRate float64) {
	if sampleRate <= 0 {
		sampleRate = core.DefaultSampleRate
	}

	p.sampleRate = sampleRate
	p.line.Resize(max(int(sampleRate*maxPredelaySeconds), 1))
	p.delaySamples = core.ClampInt(p.delaySamples, 0, p.line.Cap()-1)
	p.prepared = true
}

// Prepared reports whether Prepare has been called.
func (p *PredelayLine) Prepared() bool { return p.prepared }

// Capacity returns the line capacity in samples.
func (p *PredelayLine) Capacity() int { return p.line.Cap() }

// SetDelayMs sets the delay in milliseconds, converted at the prepared
// sample rate and clamped to [0, capacity-1] samples.
func (p *PredelayLine) SetDelayMs(ms float64) {
	if !p.prepared {
		return
	}

	p.delaySamples = PredelaySamples(ms, p.sampleRate, p.line.Cap())
}

// DelaySamples returns the active delay in samples.
func (p *PredelayLine) DelaySamples() int { return p.delaySamples }

// Reset clears the line without releasing capacity.
func (p *PredelayLine) Reset() {
	p.line.Reset()
}

// ProcessBlock delays min(len(in), len(out)) samples. in and out may alias.
// A delay of zero passes the input through while still recording it, so a
// later non-zero delay reads real history.
func (p *PredelayLine) ProcessBlock(in, out []float64) {
	if !p.prepared {
		return
	}

	n := min(len(in), len(out))
	d := p.delaySamples

	if d == 0 {
		for i := range n {
			p.line.Write(in[i])
			out[i] = in[i]
		}

		return
	}

	for i := range n {
		delayed := p.line.Read(d)
		p.line.Write(in[i])
		out[i] = delayed
	}
}
