package reverb

import "github.com/cwbudde/ddxverb/dsp/core"

// hiCutFilter is the one-pole lowpass applied to the mono input. Its memory
// belongs to the owning engine and is cleared by Engine.Reset.
type hiCutFilter struct {
	memory float64
}

func (h *hiCutFilter) process(buf []float64, coeff float64) {
	mem := h.memory
	for i, x := range buf {
		mem = core.FlushDenormals(mem + coeff*(x-mem))
		buf[i] = mem
	}

	h.memory = mem
}

func (h *hiCutFilter) reset() {
	h.memory = 0
}
