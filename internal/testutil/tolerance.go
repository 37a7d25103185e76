package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBlockNearlyEqual fails t if two channel buffers differ in shape or
// any sample pair exceeds eps.
func RequireBlockNearlyEqual(t *testing.T, got, want [][]float32, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("channel mismatch: got %d, want %d", len(got), len(want))
	}

	for c := range got {
		if len(got[c]) != len(want[c]) {
			t.Fatalf("channel %d length mismatch: got %d, want %d", c, len(got[c]), len(want[c]))
		}

		for i := range got[c] {
			diff := math.Abs(float64(got[c][i]) - float64(want[c][i]))
			if diff > eps {
				t.Fatalf("channel %d index %d: got %v, want %v (diff %v > eps %v)",
					c, i, got[c][i], want[c][i], diff, eps)
			}
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0

	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}

	return maxDiff, nil
}

// MaxAbs returns the largest absolute sample value over all channels.
func MaxAbs(buf [][]float32) float64 {
	peak := 0.0

	for _, ch := range buf {
		for _, v := range ch {
			peak = math.Max(peak, math.Abs(float64(v)))
		}
	}

	return peak
}
