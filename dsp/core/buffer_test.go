package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)
	buf[0] = 3

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}

	if out[0] != 0 {
		t.Fatalf("out[0] = %v, want 0 after reuse", out[0])
	}
}

func TestEnsureLenGrow(t *testing.T) {
	out := EnsureLen(make([]float64, 2), 16)
	if len(out) != 16 {
		t.Fatalf("len = %d, want 16", len(out))
	}

	if got := EnsureLen(out, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestEnsureLen32(t *testing.T) {
	buf := []float32{1, 2, 3, 4}

	out := EnsureLen32(buf, 3)
	if len(out) != 3 || out[2] != 0 {
		t.Fatalf("unexpected out: %#v", out)
	}

	if got := EnsureLen32(nil, 5); len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewBlock(t *testing.T) {
	buf := NewBlock(2, 5)
	if len(buf) != 2 || len(buf[0]) != 5 || len(buf[1]) != 5 {
		t.Fatalf("shape = %d x %d", len(buf), len(buf[0]))
	}

	buf[0][0] = 1
	if buf[1][0] != 0 {
		t.Fatal("channels share storage")
	}
}

func TestCloneBlockIsDeep(t *testing.T) {
	buf := NewBlock(2, 3)
	buf[1][2] = 0.25

	cp := CloneBlock(buf)
	cp[1][2] = 4

	if buf[1][2] != 0.25 {
		t.Fatal("CloneBlock shares storage")
	}

	if got := Channel64(buf, 1); len(got) != 3 || got[2] != 0.25 {
		t.Fatalf("Channel64 = %v", got)
	}
}
