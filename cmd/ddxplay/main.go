// Command ddxplay runs the reverb in real time on the default audio device.
//
// The input is a looped WAVE file or a periodic test excitation. Parameters
// are changed with single key presses while the audio plays; the status
// line shows the current settings and the processing load.
//
// Usage:
//
//	ddxplay [flags]
//
// Examples:
//
//	ddxplay
//	ddxplay -signal noise -period 4
//	ddxplay -in guitar.wav -decay 3 -wet 0.3
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/ddxverb/dsp/core"
	"github.com/cwbudde/ddxverb/dsp/effects/reverb"
	"github.com/cwbudde/ddxverb/internal/wav"
)

func main() {
	rate := flag.Int("rate", 48000, "output sample rate in Hz")
	block := flag.Int("block", 512, "maximum processing block size in samples")
	in := flag.String("in", "", "loop a 16-bit PCM or float WAVE file")
	sig := flag.String("signal", "click", "test excitation without -in: click or noise")
	period := flag.Float64("period", 3, "seconds between test excitations")
	bufferMs := flag.Int("buffer", 20, "device buffer length in milliseconds")

	store := reverb.NewParamStore()
	for _, d := range reverb.Descriptors() {
		key := d.Key
		flag.Func(key, fmt.Sprintf("initial %s (default %g)", d.Name, d.Default), func(v string) error {
			var f float64
			if _, err := fmt.Sscan(v, &f); err != nil {
				return err
			}

			return store.SetByKey(key, f)
		})
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ddxplay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a test signal or file through the reverb in real time.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s\n", helpText())
	}
	flag.Parse()

	src, sampleRate, err := openSource(*in, *sig, float64(*rate), *period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	newEngine := func() (*reverb.Engine, error) {
		return reverb.NewEngine(core.WithSampleRate(sampleRate), core.WithBlockSize(*block))
	}

	engine, err := newEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	st := newStream(engine, store, src)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(*bufferMs) * time.Millisecond,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: audio device: %v\n", err)
		os.Exit(1)
	}
	<-ready

	player := ctx.NewPlayer(st)
	player.Play()
	defer player.Close()

	var keys <-chan byte

	kb, err := openKeyboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; key controls disabled\n", err)
	} else {
		defer kb.Close()
		keys = kb.keys
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	fmt.Fprintf(os.Stderr, "%s\r\n", helpText())

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigs:
			fmt.Fprint(os.Stderr, "\r\n")
			return
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}

			switch handleKey(store, key) {
			case actionQuit:
				fmt.Fprint(os.Stderr, "\r\n")
				return
			case actionReset:
				// A fresh engine is built here and published; the audio
				// thread never sees a half-reset engine.
				fresh, err := newEngine()
				if err != nil {
					fmt.Fprintf(os.Stderr, "\r\nerror: %v\r\n", err)
					continue
				}

				st.swapEngine(fresh)
			}
		case <-ticker.C:
			fmt.Fprintf(os.Stderr, "\r%s\x1b[K", statusLine(store.Snapshot(), st.Load()))
		}
	}
}

// openSource returns the dry input and the rate to run at: the file's rate
// for -in, otherwise rate.
func openSource(path, signalName string, rate, period float64) (source, float64, error) {
	if path == "" {
		switch signalName {
		case "click":
			return newPulseSource(rate, period, false), rate, nil
		case "noise":
			return newPulseSource(rate, period, true), rate, nil
		default:
			return nil, 0, fmt.Errorf("unknown signal %q (want click or noise)", signalName)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	audio, err := wav.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	if audio.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%s: %w: %d", path, reverb.ErrInvalidSampleRate, audio.SampleRate)
	}

	if audio.Frames() == 0 {
		return nil, 0, fmt.Errorf("%s: no audio", path)
	}

	return newLoopSource(audio.Channels), float64(audio.SampleRate), nil
}
