package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
		{name: "nan", value: math.NaN(), lo: 0.1, hi: 0.99, expected: 0.1},
		{name: "inf", value: math.Inf(1), lo: 0, hi: 500, expected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(0, 1, 10); got != 1 {
		t.Fatalf("ClampInt(0,1,10) = %d, want 1", got)
	}

	if got := ClampInt(11, 1, 10); got != 10 {
		t.Fatalf("ClampInt(11,1,10) = %d, want 10", got)
	}

	if got := ClampInt(5, 10, 1); got != 5 {
		t.Fatalf("ClampInt(5,10,1) = %d, want 5", got)
	}
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		value, srcLo, srcHi, dstLo, dstHi, want float64
	}{
		{0, 0, 100, 20000, 2000, 20000},
		{100, 0, 100, 20000, 2000, 2000},
		{50, 0, 100, 20000, 2000, 11000},
		{10, 0, 20, 0.3, 0.7, 0.5},
		{3, 3, 3, 7, 9, 7},
	}

	for _, tt := range tests {
		got := MapRange(tt.value, tt.srcLo, tt.srcHi, tt.dstLo, tt.dstHi)
		if !NearlyEqual(got, tt.want, 1e-12) {
			t.Fatalf("MapRange(%v, %v, %v, %v, %v) = %v, want %v",
				tt.value, tt.srcLo, tt.srcHi, tt.dstLo, tt.dstHi, got, tt.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-40); got != 0 {
		t.Fatalf("FlushDenormals(1e-40) = %g, want 0", got)
	}

	if got := FlushDenormals(-5e-31); got != 0 {
		t.Fatalf("FlushDenormals(-5e-31) = %g, want 0", got)
	}

	if got := FlushDenormals(1e-20); got != 1e-20 {
		t.Fatalf("FlushDenormals(1e-20) = %g, want 1e-20", got)
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)

	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if got := DBToLinear(0); got != 1 {
		t.Fatalf("DBToLinear(0) = %v, want 1", got)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
