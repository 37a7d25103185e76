package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/cwbudde/ddxverb/dsp/effects/reverb"
)

const (
	channels       = 2
	bytesPerSample = 4
	frameBytes     = channels * bytesPerSample

	// loadSmoothing weights the newest block in the CPU load average.
	loadSmoothing = 0.1
)

// stream is the audio-thread side of the player. Read renders interleaved
// float32 little-endian stereo frames. The engine pointer is swapped
// atomically by the control side, so Read never takes a lock.
type stream struct {
	engine     atomic.Pointer[reverb.Engine]
	params     *reverb.ParamStore
	src        source
	sampleRate float64
	blockSize  int

	buf  [channels][]float32
	view [][]float32

	load atomic.Uint64 // float64 bits, fraction of real time
}

func newStream(e *reverb.Engine, params *reverb.ParamStore, src source) *stream {
	s := &stream{
		params:     params,
		src:        src,
		sampleRate: e.SampleRate(),
		blockSize:  e.MaxBlockSize(),
	}

	for c := range s.buf {
		s.buf[c] = make([]float32, s.blockSize)
	}

	s.view = make([][]float32, channels)
	s.engine.Store(e)

	return s
}

// Read implements io.Reader for the audio backend. It always fills whole
// frames; a trailing partial frame is zeroed.
func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes

	for done := 0; done < frames; {
		n := min(s.blockSize, frames-done)
		s.renderBlock(n)

		out := p[done*frameBytes:]
		for i := range n {
			for c := range channels {
				off := (i*channels + c) * bytesPerSample
				binary.LittleEndian.PutUint32(out[off:], math.Float32bits(s.buf[c][i]))
			}
		}

		done += n
	}

	clear(p[frames*frameBytes:])

	return len(p), nil
}

func (s *stream) renderBlock(n int) {
	start := time.Now()

	for c := range s.buf {
		s.view[c] = s.buf[c][:n]
	}

	s.src.fill(s.view)

	if e := s.engine.Load(); e != nil {
		e.Process(s.view, s.params.Snapshot())
	}

	s.recordLoad(time.Since(start), n)
}

func (s *stream) recordLoad(elapsed time.Duration, frames int) {
	budget := float64(frames) / s.sampleRate
	if budget <= 0 {
		return
	}

	current := elapsed.Seconds() / budget
	prev := math.Float64frombits(s.load.Load())
	s.load.Store(math.Float64bits(prev + loadSmoothing*(current-prev)))
}

// Load returns the smoothed processing time as a fraction of real time.
func (s *stream) Load() float64 {
	return math.Float64frombits(s.load.Load())
}

// swapEngine installs e for subsequent blocks. The previous engine is no
// longer touched by the audio thread after the current block.
func (s *stream) swapEngine(e *reverb.Engine) {
	s.engine.Store(e)
}
