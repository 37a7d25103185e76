package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}
}

func TestDeterministicNoiseRepeatable(t *testing.T) {
	a := DeterministicNoise(7, 1, 64)
	b := DeterministicNoise(7, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)

	for i, v := range a {
		if v < -1 || v > 1 {
			t.Fatalf("index %d: %v out of range", i, v)
		}
	}
}

func TestImpulseBlock(t *testing.T) {
	buf := ImpulseBlock(2, 8, 3)
	for c := range buf {
		for i, v := range buf[c] {
			want := float32(0)
			if i == 3 {
				want = 1
			}

			if v != want {
				t.Fatalf("channel %d index %d: got %v want %v", c, i, v, want)
			}
		}
	}

	if MaxAbs(ImpulseBlock(1, 4, 9)) != 0 {
		t.Fatal("out-of-range impulse should produce silence")
	}
}

func TestNoiseBlockChannelsDiffer(t *testing.T) {
	buf := NoiseBlock(1, 0.5, 2, 32)

	same := true
	for i := range buf[0] {
		if buf[0][i] != buf[1][i] {
			same = false
			break
		}
	}

	if same {
		t.Fatal("expected independent channels")
	}
}

func TestCloneBlockIsDeep(t *testing.T) {
	buf := ImpulseBlock(2, 4, 0)
	cp := CloneBlock(buf)
	cp[1][0] = 5

	if buf[1][0] != 1 {
		t.Fatal("CloneBlock shares storage")
	}

	if got := Channel64(buf, 0); got[0] != 1 || len(got) != 4 {
		t.Fatalf("Channel64: %v", got)
	}
}
