// Package delay provides the fixed-capacity circular delay line shared by the
// reverb's comb, allpass and predelay stages.
package delay

import "fmt"

// Line is a circular delay line with a fixed capacity, a write cursor and a
// logical length. The cursor wraps at the logical length, so a value written
// at the cursor is seen again at the cursor exactly Len() writes later.
//
// The zero value is an empty line; Resize gives it storage.
type Line struct {
	buffer   []float64
	writePos int
	length   int
}

// New returns a delay line of fixed capacity whose logical length equals its
// capacity.
func New(capacity int) (*Line, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("delay capacity must be > 0: %d", capacity)
	}

	d := &Line{}
	d.Resize(capacity)

	return d, nil
}

// Resize sets the capacity, reallocating only when it changes, then clears
// the line and sets the logical length to the full capacity.
func (d *Line) Resize(capacity int) {
	capacity = max(capacity, 0)
	if capacity != len(d.buffer) {
		d.buffer = make([]float64, capacity)
	}

	d.length = capacity
	d.Reset()
}

// Cap returns the allocated capacity in samples.
func (d *Line) Cap() int {
	return len(d.buffer)
}

// Len returns the logical delay length in samples.
func (d *Line) Len() int {
	return d.length
}

// Cursor returns the current write position.
func (d *Line) Cursor() int {
	return d.writePos
}

// SetLen sets the logical delay length, clamped to [1, Cap()].
// A cursor beyond the new length restarts at 0.
func (d *Line) SetLen(n int) {
	if len(d.buffer) == 0 {
		return
	}

	d.length = min(max(n, 1), len(d.buffer))
	if d.writePos >= d.length {
		d.writePos = 0
	}
}

// Tap returns the value stored at the cursor, i.e. the sample written Len()
// writes ago. It must be read before Write overwrites it.
func (d *Line) Tap() float64 {
	if len(d.buffer) == 0 {
		return 0
	}

	return d.buffer[d.writePos]
}

// Write stores sample at the cursor and advances it, wrapping at Len().
func (d *Line) Write(sample float64) {
	if len(d.buffer) == 0 {
		return
	}

	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= d.length {
		d.writePos = 0
	}
}

// Read returns the sample written delay writes ago, addressing the full
// capacity: Read(1) is the most recent write. The line must run at full
// length for this addressing to be meaningful.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}

	return d.buffer[readPos]
}

// Span returns the contiguous run of storage starting at the cursor, at most
// n samples long and never crossing the wrap point. Batched kernels gather
// from and scatter into the span, then call Advance(len(span)).
func (d *Line) Span(n int) []float64 {
	if len(d.buffer) == 0 || n <= 0 {
		return nil
	}

	end := min(d.writePos+n, d.length)

	return d.buffer[d.writePos:end]
}

// Advance moves the cursor n samples forward, wrapping at Len().
func (d *Line) Advance(n int) {
	if d.length == 0 {
		return
	}

	d.writePos = (d.writePos + n) % d.length
}

// Reset clears the stored samples and rewinds the cursor without releasing
// capacity.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
