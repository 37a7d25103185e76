package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}

	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestMaxAbs(t *testing.T) {
	buf := [][]float32{{0.1, -0.7}, {0.3, 0.2}}
	if got := MaxAbs(buf); got < 0.699 || got > 0.701 {
		t.Fatalf("MaxAbs = %v, want 0.7", got)
	}
}

func TestRequireBlockNearlyEqualPasses(t *testing.T) {
	a := [][]float32{{1, 2}, {3, 4}}
	b := [][]float32{{1, 2.0000001}, {3, 4}}
	RequireBlockNearlyEqual(t, a, b, 1e-5)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, 1, -1e300})
}
