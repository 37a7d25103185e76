package delay

import "testing"

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for capacity=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for capacity=-1")
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Cap() != 16 {
		t.Fatalf("Cap: got %d want 16", d.Cap())
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}

	if d.Cursor() != 0 {
		t.Fatalf("Cursor: got %d want 0", d.Cursor())
	}
}

func TestZeroValueIsInert(t *testing.T) {
	var d Line

	d.Write(1)
	d.SetLen(4)
	d.Advance(3)

	if got := d.Tap(); got != 0 {
		t.Fatalf("Tap: got %v want 0", got)
	}

	if got := d.Read(1); got != 0 {
		t.Fatalf("Read: got %v want 0", got)
	}

	if span := d.Span(8); span != nil {
		t.Fatalf("Span: got %v want nil", span)
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 10 {
		d.Write(float64(i))
	}
	// buffer should contain [8, 9, 6, 7], writePos=2
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}

	if got := d.Read(4); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

// --- tap-before-write ordering ---

func TestTapReturnsSampleWrittenLenAgo(t *testing.T) {
	d, err := New(10)
	if err != nil {
		t.Fatal(err)
	}

	d.SetLen(3)

	var taps []float64
	for i := 1; i <= 7; i++ {
		taps = append(taps, d.Tap())
		d.Write(float64(i))
	}

	want := []float64{0, 0, 0, 1, 2, 3, 4}
	for i := range want {
		if taps[i] != want[i] {
			t.Fatalf("tap %d: got %v want %v", i, taps[i], want[i])
		}
	}
}

func TestSetLenClamps(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	d.SetLen(0)
	if d.Len() != 1 {
		t.Fatalf("SetLen(0): got %d want 1", d.Len())
	}

	d.SetLen(100)
	if d.Len() != 8 {
		t.Fatalf("SetLen(100): got %d want 8", d.Len())
	}
}

func TestSetLenRewindsCursorBeyondLength(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for range 6 {
		d.Write(1)
	}

	d.SetLen(4)
	if d.Cursor() != 0 {
		t.Fatalf("Cursor: got %d want 0", d.Cursor())
	}

	d.SetLen(8)
	d.Advance(2)
	d.SetLen(4)

	if d.Cursor() != 2 {
		t.Fatalf("Cursor: got %d want 2", d.Cursor())
	}
}

// --- batched span access ---

func TestSpanStopsAtWrap(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	d.SetLen(10)
	d.Advance(7)

	span := d.Span(8)
	if len(span) != 3 {
		t.Fatalf("span len: got %d want 3", len(span))
	}

	d.Advance(len(span))
	if d.Cursor() != 0 {
		t.Fatalf("Cursor after wrap: got %d want 0", d.Cursor())
	}

	if got := len(d.Span(4)); got != 4 {
		t.Fatalf("span len: got %d want 4", got)
	}
}

func TestSpanMatchesSampleWise(t *testing.T) {
	a, _ := New(5)
	b, _ := New(5)

	for i := range 13 {
		a.Write(float64(i))
	}

	written := 0
	for written < 13 {
		span := b.Span(13 - written)
		for j := range span {
			span[j] = float64(written + j)
		}

		b.Advance(len(span))
		written += len(span)
	}

	for delay := 1; delay <= 5; delay++ {
		if a.Read(delay) != b.Read(delay) {
			t.Fatalf("Read(%d): sample-wise %v, span %v", delay, a.Read(delay), b.Read(delay))
		}
	}

	if a.Cursor() != b.Cursor() {
		t.Fatalf("cursor mismatch: %d vs %d", a.Cursor(), b.Cursor())
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.SetLen(3)
	d.Write(1)
	d.Write(2)
	d.Reset()

	if d.Cursor() != 0 {
		t.Fatalf("Cursor after reset: got %d want 0", d.Cursor())
	}

	if d.Len() != 3 || d.Cap() != 4 {
		t.Fatalf("reset changed geometry: len=%d cap=%d", d.Len(), d.Cap())
	}

	for i := range 4 {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

func TestResizeReusesStorage(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(3)
	before := &d.buffer[0]

	d.Resize(8)

	if &d.buffer[0] != before {
		t.Fatal("Resize with unchanged capacity reallocated")
	}

	if d.buffer[0] != 0 {
		t.Fatalf("Resize did not clear: %v", d.buffer[0])
	}

	d.Resize(12)
	if d.Cap() != 12 || d.Len() != 12 {
		t.Fatalf("Resize(12): cap=%d len=%d", d.Cap(), d.Len())
	}
}
