// Package testutil holds deterministic signal generators and tolerance
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/ddxverb/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Block allocates a silent channels x length float32 buffer.
func Block(channels, length int) [][]float32 {
	return core.NewBlock(channels, length)
}

// ImpulseBlock returns a silent buffer with a unit impulse at pos on every
// channel.
func ImpulseBlock(channels, length, pos int) [][]float32 {
	buf := Block(channels, length)
	for c := range buf {
		if pos >= 0 && pos < length {
			buf[c][pos] = 1
		}
	}

	return buf
}

// NoiseBlock returns a buffer of independent seeded noise per channel.
func NoiseBlock(seed int64, amplitude float64, channels, length int) [][]float32 {
	buf := Block(channels, length)
	for c := range buf {
		noise := DeterministicNoise(seed+int64(c), amplitude, length)
		for i, v := range noise {
			buf[c][i] = float32(v)
		}
	}

	return buf
}

// CloneBlock returns a deep copy of buf.
func CloneBlock(buf [][]float32) [][]float32 {
	return core.CloneBlock(buf)
}

// Channel64 widens one channel of buf to float64.
func Channel64(buf [][]float32, c int) []float64 {
	return core.Channel64(buf, c)
}
