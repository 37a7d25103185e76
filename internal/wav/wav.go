// Package wav reads and writes the RIFF/WAVE files used by the command line
// tools. The writer produces 16-bit PCM and does not need to know the amount
// of audio up front: sizes are patched in by Finish.
// See http://soundfile.sapp.org/doc/WaveFormat/ for the format.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Audio formats understood by Decode.
const (
	PCM       = 1
	IEEEFloat = 3
)

const (
	riffSizeOffset = 4
	dataSizeOffset = 40
	headerSize     = 44
)

// Errors returned by Decode.
var (
	ErrNotWAV            = errors.New("wav: not a RIFF/WAVE stream")
	ErrUnsupportedFormat = errors.New("wav: unsupported sample format")
	ErrMissingChunk      = errors.New("wav: missing fmt or data chunk")
)

// Format is the 16-byte body of the fmt chunk.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// Writer streams 16-bit PCM frames to a WriteSeeker.
type Writer struct {
	ws       io.WriteSeeker
	channels int
	frames   int64
	scratch  []int16
}

// NewWriter writes a WAVE header for channels at sampleRate with zero sizes
// and returns a writer positioned at the start of the data chunk.
func NewWriter(ws io.WriteSeeker, sampleRate, channels int) (*Writer, error) {
	if channels < 1 || channels > math.MaxUint16 {
		return nil, fmt.Errorf("wav: invalid channel count %d", channels)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}

	format := Format{
		AudioFormat:   PCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		BitsPerSample: 16,
	}
	format.BlockAlign = uint16(channels * 2)
	format.ByteRate = uint32(sampleRate) * uint32(format.BlockAlign)

	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		int32(0), // patched by Finish
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		int32(16),
		format,
		[4]byte{'d', 'a', 't', 'a'},
		int32(0), // patched by Finish
	}

	for _, field := range header {
		if err := binary.Write(ws, binary.LittleEndian, field); err != nil {
			return nil, fmt.Errorf("wav: write header: %w", err)
		}
	}

	return &Writer{ws: ws, channels: channels}, nil
}

// WriteFrames interleaves and writes samples organized by channel,
// [channel][frame]. Values are clipped to [-1, 1]. Every channel must hold
// at least as many frames as channel 0.
func (w *Writer) WriteFrames(samples [][]float32) error {
	if len(samples) != w.channels {
		return fmt.Errorf("wav: got %d channels, writer has %d", len(samples), w.channels)
	}

	n := len(samples[0])
	for c := 1; c < len(samples); c++ {
		if len(samples[c]) < n {
			return fmt.Errorf("wav: channel %d holds %d frames, want %d", c, len(samples[c]), n)
		}
	}

	need := n * w.channels
	if cap(w.scratch) < need {
		w.scratch = make([]int16, need)
	}

	out := w.scratch[:need]
	for i := range n {
		for c := range samples {
			out[i*w.channels+c] = toInt16(samples[c][i])
		}
	}

	if err := binary.Write(w.ws, binary.LittleEndian, out); err != nil {
		return err
	}

	w.frames += int64(n)

	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int64 { return w.frames }

// Finish patches the RIFF and data sizes and returns the file length.
// The writer is left positioned at the end of the header.
func (w *Writer) Finish() (int64, error) {
	wlen, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	patches := []struct {
		offset int64
		value  int32
	}{
		{riffSizeOffset, int32(wlen - 8)},
		{dataSizeOffset, int32(wlen - headerSize)},
	}

	for _, p := range patches {
		if _, err := w.ws.Seek(p.offset, io.SeekStart); err != nil {
			return 0, err
		}

		if err := binary.Write(w.ws, binary.LittleEndian, p.value); err != nil {
			return 0, err
		}
	}

	return wlen, nil
}

func toInt16(v float32) int16 {
	switch {
	case math.IsNaN(float64(v)):
		return 0
	case v >= 1:
		return math.MaxInt16
	case v <= -1:
		return -math.MaxInt16
	default:
		return int16(math.Round(float64(v) * math.MaxInt16))
	}
}

// Audio is a decoded file with samples organized by channel.
type Audio struct {
	SampleRate int
	Channels   [][]float32
}

// Frames returns the number of frames per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Decode reads a 16-bit PCM or 32-bit float WAVE stream. Chunks other than
// fmt and data are skipped.
func Decode(r io.Reader) (*Audio, error) {
	var riff struct {
		ID   [4]byte
		Size uint32
		Wave [4]byte
	}

	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWAV, err)
	}

	if string(riff.ID[:]) != "RIFF" || string(riff.Wave[:]) != "WAVE" {
		return nil, ErrNotWAV
	}

	var (
		format    Format
		haveFmt   bool
		chunkID   [4]byte
		chunkSize uint32
	)

	for {
		if err := binary.Read(r, binary.LittleEndian, &chunkID); err != nil {
			return nil, ErrMissingChunk
		}

		if err := binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
			return nil, ErrMissingChunk
		}

		switch string(chunkID[:]) {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedFormat, chunkSize)
			}

			if err := binary.Read(r, binary.LittleEndian, &format); err != nil {
				return nil, err
			}

			if err := skip(r, int64(chunkSize)-16+int64(chunkSize&1)); err != nil {
				return nil, err
			}

			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, ErrMissingChunk
			}

			return decodeData(io.LimitReader(r, int64(chunkSize)), format)
		default:
			if err := skip(r, int64(chunkSize)+int64(chunkSize&1)); err != nil {
				return nil, err
			}
		}
	}
}

func decodeData(r io.Reader, format Format) (*Audio, error) {
	channels := int(format.Channels)
	if channels == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrUnsupportedFormat)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var (
		bytesPerSample int
		sample         func(b []byte) float32
	)

	switch {
	case format.AudioFormat == PCM && format.BitsPerSample == 16:
		bytesPerSample = 2
		sample = func(b []byte) float32 {
			return float32(int16(binary.LittleEndian.Uint16(b))) / math.MaxInt16
		}
	case format.AudioFormat == IEEEFloat && format.BitsPerSample == 32:
		bytesPerSample = 4
		sample = func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		}
	default:
		return nil, fmt.Errorf("%w: format %d, %d bits", ErrUnsupportedFormat, format.AudioFormat, format.BitsPerSample)
	}

	frames := len(data) / (bytesPerSample * channels)

	audio := &Audio{SampleRate: int(format.SampleRate), Channels: make([][]float32, channels)}
	for c := range audio.Channels {
		audio.Channels[c] = make([]float32, frames)
	}

	for i := range frames {
		for c := range channels {
			off := (i*channels + c) * bytesPerSample
			audio.Channels[c][i] = sample(data[off : off+bytesPerSample])
		}
	}

	return audio, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}

	_, err := io.CopyN(io.Discard, r, n)

	return err
}
