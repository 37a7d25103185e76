package core

// EnsureLen returns a zeroed slice of length n, reusing buf's backing array
// when it is large enough. Intended for configuration paths; the returned
// slice is ready to be used as scratch space by real-time code.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) < n {
		return make([]float64, n)
	}

	buf = buf[:n]
	Zero(buf)

	return buf
}

// EnsureLen32 is EnsureLen for float32 buffers.
func EnsureLen32(buf []float32, n int) []float32 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) < n {
		return make([]float32, n)
	}

	buf = buf[:n]
	clear(buf)

	return buf
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// NewBlock allocates a silent channels x length float32 buffer.
func NewBlock(channels, length int) [][]float32 {
	buf := make([][]float32, channels)
	for c := range buf {
		buf[c] = make([]float32, length)
	}

	return buf
}

// CloneBlock returns a deep copy of buf.
func CloneBlock(buf [][]float32) [][]float32 {
	out := make([][]float32, len(buf))
	for c := range buf {
		out[c] = append([]float32(nil), buf[c]...)
	}

	return out
}

// Channel64 widens one channel of buf to float64.
func Channel64(buf [][]float32, c int) []float64 {
	out := make([]float64, len(buf[c]))
	for i, v := range buf[c] {
		out[i] = float64(v)
	}

	return out
}
