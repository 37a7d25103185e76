package main

import (
	"math/rand"
)

// source produces dry input for the player, one block at a time.
type source interface {
	fill(buf [][]float32)
}

// loopSource repeats a decoded file forever.
type loopSource struct {
	channels [][]float32
	pos      int
}

func newLoopSource(channels [][]float32) *loopSource {
	return &loopSource{channels: channels}
}

func (l *loopSource) fill(buf [][]float32) {
	frames := len(l.channels[0])

	for i := range buf[0] {
		for c := range buf {
			buf[c][i] = l.channels[min(c, len(l.channels)-1)][l.pos]
		}

		l.pos++
		if l.pos == frames {
			l.pos = 0
		}
	}
}

// pulseSource emits a short excitation every period: a single-sample click
// or a noise burst, separated by silence so the tail can be heard.
type pulseSource struct {
	period int
	burst  int
	pos    int
	rng    *rand.Rand
}

func newPulseSource(sampleRate, periodSeconds float64, noise bool) *pulseSource {
	p := &pulseSource{
		period: max(int(sampleRate*periodSeconds), 1),
		burst:  1,
		rng:    rand.New(rand.NewSource(1)),
	}

	if noise {
		p.burst = max(int(sampleRate*0.05), 1)
	}

	return p
}

func (p *pulseSource) fill(buf [][]float32) {
	for i := range buf[0] {
		var v float32

		switch {
		case p.pos >= p.burst:
		case p.burst == 1:
			v = 0.8
		default:
			v = float32(p.rng.Float64()*2-1) * 0.5
		}

		for c := range buf {
			buf[c][i] = v
		}

		p.pos++
		if p.pos == p.period {
			p.pos = 0
		}
	}
}
