package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cwbudde/ddxverb/dsp/core"
	"github.com/cwbudde/ddxverb/dsp/effects/reverb"
	"github.com/cwbudde/ddxverb/measure/ir"
)

// hfCutoffHz splits the tail spectrum for the high-frequency ratio.
const hfCutoffHz = 4000.0

type renderConfig struct {
	sampleRate float64
	blockSize  int
	seconds    float64
	signal     string
	// inputs is how many leading channels of the input carry signal; the
	// rest are output-only. Zero means all of them.
	inputs int
	params reverb.Parameters
}

type renderResult struct {
	output   [][]float32
	elapsed  time.Duration
	metrics  ir.Metrics
	hfRatio  float64
	strategy reverb.Strategy
}

// makeInput builds the excitation for cfg.signal: a unit impulse or a
// 100 ms noise burst, followed by silence.
func makeInput(cfg renderConfig) ([][]float32, error) {
	n := int(cfg.sampleRate * cfg.seconds)
	if n <= 0 {
		return nil, fmt.Errorf("render length must be positive, got %g s", cfg.seconds)
	}

	buf := core.NewBlock(2, n)

	switch cfg.signal {
	case "impulse":
		for c := range buf {
			buf[c][0] = 1
		}

		return buf, nil
	case "noise":
		rng := rand.New(rand.NewSource(1))
		burst := min(n, int(cfg.sampleRate*0.1))

		for c := range buf {
			for i := range burst {
				buf[c][i] = float32((rng.Float64()*2 - 1) * 0.5)
			}
		}

		return buf, nil
	default:
		return nil, fmt.Errorf("unknown signal %q (want impulse or noise)", cfg.signal)
	}
}

// render runs input through a fresh engine block by block, the way a host
// would, and analyzes the left output channel.
func render(cfg renderConfig, input [][]float32) (renderResult, error) {
	e, err := reverb.NewEngine(core.WithSampleRate(cfg.sampleRate), core.WithBlockSize(cfg.blockSize))
	if err != nil {
		return renderResult{}, err
	}

	out := core.CloneBlock(input)
	block := e.MaxBlockSize()
	n := len(out[0])

	inputs := cfg.inputs
	if inputs <= 0 {
		inputs = len(out)
	}

	start := time.Now()

	for off := 0; off < n; off += block {
		end := min(off+block, n)

		view := make([][]float32, len(out))
		for c := range out {
			view[c] = out[c][off:end]
		}

		e.ProcessChannels(view, inputs, cfg.params)
	}

	res := renderResult{
		output:   out,
		elapsed:  time.Since(start),
		strategy: cfg.params.Strategy(),
	}

	if cfg.params.Bypass {
		return res, nil
	}

	left := core.Channel64(out, 0)
	analyzer := ir.NewAnalyzer(cfg.sampleRate)

	res.metrics, err = analyzer.Analyze(left)
	if err != nil {
		return res, fmt.Errorf("analyze: %w", err)
	}

	if cfg.sampleRate/2 > hfCutoffHz {
		res.hfRatio, err = analyzer.HighFrequencyRatio(left[res.metrics.Onset:], hfCutoffHz)
		if err != nil {
			return res, fmt.Errorf("analyze: %w", err)
		}
	}

	return res, nil
}

// realtimeFactor is audio duration divided by processing time.
func realtimeFactor(res renderResult, sampleRate float64) float64 {
	if res.elapsed <= 0 || len(res.output) == 0 {
		return 0
	}

	audio := float64(len(res.output[0])) / sampleRate

	return audio / res.elapsed.Seconds()
}
