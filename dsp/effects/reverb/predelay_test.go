package reverb

import (
	"testing"

	"github.com/cwbudde/ddxverb/internal/testutil"
)

func TestPredelayShiftsSignal(t *testing.T) {
	var p PredelayLine
	p.Prepare(48000)
	p.SetDelayMs(1)

	if p.DelaySamples() != 48 {
		t.Fatalf("DelaySamples = %d, want 48", p.DelaySamples())
	}

	in := testutil.Impulse(100, 0)
	out := make([]float64, len(in))
	p.ProcessBlock(in, out)

	want := testutil.Impulse(100, 48)
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestPredelayZeroIsIdentity(t *testing.T) {
	var p PredelayLine
	p.Prepare(48000)
	p.SetDelayMs(0)

	in := testutil.DeterministicNoise(1, 1, 64)
	out := make([]float64, len(in))
	p.ProcessBlock(in, out)

	testutil.RequireSliceNearlyEqual(t, out, in, 0)

	// History recorded at zero delay is visible once a delay is set.
	p.SetDelayMs(1)

	next := make([]float64, 16)
	p.ProcessBlock(make([]float64, 16), next)

	testutil.RequireSliceNearlyEqual(t, next, in[16:32], 0)
}

func TestPredelayCapacityClamp(t *testing.T) {
	var p PredelayLine
	p.Prepare(48000)

	if p.Capacity() != 24000 {
		t.Fatalf("Capacity = %d, want 24000", p.Capacity())
	}

	p.SetDelayMs(500)

	if p.DelaySamples() != 23999 {
		t.Fatalf("DelaySamples = %d, want 23999", p.DelaySamples())
	}

	p.SetDelayMs(-3)

	if p.DelaySamples() != 0 {
		t.Fatalf("DelaySamples = %d, want 0", p.DelaySamples())
	}
}

func TestPredelayUnprepared(t *testing.T) {
	var p PredelayLine
	p.SetDelayMs(10)

	out := []float64{5}
	p.ProcessBlock([]float64{1}, out)

	if out[0] != 5 || p.DelaySamples() != 0 {
		t.Fatalf("unprepared predelay changed state: out=%v delay=%d", out, p.DelaySamples())
	}
}
