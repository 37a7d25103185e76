package reverb_test

import (
	"fmt"

	"github.com/cwbudde/ddxverb/dsp/core"
	"github.com/cwbudde/ddxverb/dsp/effects/reverb"
)

func ExampleEngine_Process() {
	e, err := reverb.NewEngine(core.WithSampleRate(48000), core.WithBlockSize(4096))
	if err != nil {
		panic(err)
	}

	left := make([]float32, 4096)
	right := make([]float32, 4096)
	left[0], right[0] = 1, 1

	p := reverb.DefaultParameters()
	p.Wet = 1

	e.Process([][]float32{left, right}, p)

	first := -1
	for i, v := range left {
		if v != 0 {
			first = i
			break
		}
	}

	fmt.Println("first reverb sample:", first)
	fmt.Println("right is inverted:", right[first] == -left[first])
	// Output:
	// first reverb sample: 2400
	// right is inverted: true
}

func ExampleParamStore() {
	store := reverb.NewParamStore()

	if err := store.SetByKey("decay", 8); err != nil {
		panic(err)
	}

	store.Nudge(reverb.ParamWet, 0.2)
	store.Toggle(reverb.ParamVectorized)

	p := store.Snapshot()
	fmt.Printf("decay=%.1f s wet=%.1f strategy=%s\n", p.DecaySeconds, p.Wet, p.Strategy())
	// Output:
	// decay=8.0 s wet=0.7 strategy=vectorized
}

func ExampleCombFeedbackGain() {
	avgDelay := 1234.25 / 48000.0

	fmt.Printf("%.3f\n", reverb.CombFeedbackGain(2, avgDelay, 0))
	fmt.Printf("%.3f\n", reverb.CombFeedbackGain(20, avgDelay, 10))
	// Output:
	// 0.915
	// 0.990
}
