// Command ddxrender renders the reverb's response to a test signal offline,
// prints its acoustic metrics and optionally writes the result as WAVE.
//
// Usage:
//
//	ddxrender [flags]
//
// Every reverb parameter is a flag named after its key; -params lists them.
//
// Examples:
//
//	ddxrender
//	ddxrender -decay 12 -damping 80 -out tail.wav
//	ddxrender -signal noise -simd -compare
//	ddxrender -in dry.wav -out wet.wav -wet 0.3
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/ddxverb/dsp/core"
	"github.com/cwbudde/ddxverb/dsp/effects/reverb"
	"github.com/cwbudde/ddxverb/internal/wav"
)

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	block := flag.Int("block", 1024, "maximum block size in samples")
	seconds := flag.Float64("seconds", 4, "render length in seconds")
	signal := flag.String("signal", "impulse", "test signal: impulse or noise")
	in := flag.String("in", "", "process a 16-bit PCM or float WAVE file instead of a test signal")
	out := flag.String("out", "", "write the rendered output to a 16-bit WAVE file")
	compare := flag.Bool("compare", false, "render with both strategies and report the largest difference")
	params := flag.Bool("params", false, "list reverb parameters and exit")

	values := registerParamFlags(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ddxrender [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders the reverb response to a test signal and prints decay metrics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ddxrender -decay 12 -damping 80 -out tail.wav\n")
		fmt.Fprintf(os.Stderr, "  ddxrender -signal noise -simd -compare\n")
	}
	flag.Parse()

	if *params {
		printParams()
		return
	}

	cfg := renderConfig{
		sampleRate: *rate,
		blockSize:  *block,
		seconds:    *seconds,
		signal:     *signal,
		params:     values.parameters(),
	}

	input, err := loadInput(&cfg, *in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results := make([]renderResult, 0, 2)

	res, err := render(cfg, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results = append(results, res)

	if *compare {
		other := cfg
		other.params.UseVectorized = !cfg.params.UseVectorized

		res, err := render(other, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		results = append(results, res)
	}

	printResults(results, cfg.sampleRate)

	if len(results) == 2 {
		fmt.Printf("\nmax strategy difference: %.3g\n", maxDiff(results[0].output, results[1].output))
	}

	if *out != "" {
		if err := writeWAV(*out, int(math.Round(cfg.sampleRate)), results[0].output); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// paramFlags holds one flag value per reverb parameter.
type paramFlags struct {
	values  map[reverb.ParamID]*float64
	toggles map[reverb.ParamID]*bool
}

func registerParamFlags(fs *flag.FlagSet) *paramFlags {
	pf := &paramFlags{
		values:  make(map[reverb.ParamID]*float64),
		toggles: make(map[reverb.ParamID]*bool),
	}

	for _, d := range reverb.Descriptors() {
		if d.Toggle {
			pf.toggles[d.ID] = fs.Bool(d.Key, d.Default != 0, d.Name)
			continue
		}

		usage := fmt.Sprintf("%s [%g..%g]", d.Name, d.Min, d.Max)
		if d.Unit != "" {
			usage += " " + d.Unit
		}

		pf.values[d.ID] = fs.Float64(d.Key, d.Default, usage)
	}

	return pf
}

func (pf *paramFlags) parameters() reverb.Parameters {
	var p reverb.Parameters

	for id, v := range pf.values {
		p.Set(id, *v)
	}

	for id, on := range pf.toggles {
		if *on {
			p.Set(id, 1)
		}
	}

	return p
}

func loadInput(cfg *renderConfig, path string) ([][]float32, error) {
	if path == "" {
		return makeInput(*cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	audio, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	buf, err := inputFromAudio(cfg, audio)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return buf, nil
}

// inputFromAudio adopts the file's sample rate and lays its first two
// channels out in a stereo buffer with room for the tail. A mono file fills
// the left channel and is rendered as mono-in, stereo-out.
func inputFromAudio(cfg *renderConfig, audio *wav.Audio) ([][]float32, error) {
	if audio.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", reverb.ErrInvalidSampleRate, audio.SampleRate)
	}

	if audio.Frames() == 0 {
		return nil, errors.New("no audio")
	}

	cfg.sampleRate = float64(audio.SampleRate)

	channels := audio.Channels
	if len(channels) > 2 {
		channels = channels[:2]
	}

	cfg.inputs = len(channels)

	tail := int(cfg.sampleRate * cfg.seconds)
	buf := core.NewBlock(2, audio.Frames()+tail)

	for c := range channels {
		copy(buf[c], channels[c])
	}

	return buf, nil
}

func writeWAV(path string, sampleRate int, buf [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w, err := wav.NewWriter(f, sampleRate, len(buf))
	if err != nil {
		f.Close()
		return err
	}

	if err := w.WriteFrames(buf); err != nil {
		f.Close()
		return err
	}

	if _, err := w.Finish(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func printParams() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Key\tName\tMin\tMax\tDefault\tUnit\n")
	fmt.Fprintf(tw, "---\t----\t---\t---\t-------\t----\n")

	for _, d := range reverb.Descriptors() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n", d.Key, d.Name, d.Min, d.Max, d.Default, d.Unit)
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printResults(results []renderResult, sampleRate float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Strategy\tOnset [ms]\tPeak\tEDT [s]\tT20 [s]\tT30 [s]\tRT60 [s]\tHF>4k\tRealtime\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	fmt.Fprintf(tw, "--------\t----------\t----\t-------\t-------\t-------\t--------\t-----\t--------\n")

	for _, r := range results {
		m := r.metrics
		if _, err := fmt.Fprintf(tw, "%s\t%.2f\t%.4f\t%.2f\t%.2f\t%.2f\t%.2f\t%.3f\t%.0fx\n",
			r.strategy,
			m.OnsetSeconds*1000,
			m.Peak,
			m.EDT,
			m.T20,
			m.T30,
			m.RT60,
			r.hfRatio,
			realtimeFactor(r, sampleRate),
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func maxDiff(a, b [][]float32) float64 {
	peak := 0.0

	for c := range a {
		for i := range a[c] {
			peak = math.Max(peak, math.Abs(float64(a[c][i])-float64(b[c][i])))
		}
	}

	return peak
}
