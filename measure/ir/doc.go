// Package ir analyzes rendered reverb impulse responses.
//
// The metrics are the ones needed to check a reverberator against its
// parameters:
//
//   - Onset: first sample of the response, which reveals the predelay
//   - EDT, T20, T30, RT60: decay times from the Schroeder backward integral,
//     measured from the onset rather than from the peak
//   - HighFrequencyRatio: share of tail energy above a cutoff, which reveals
//     feedback damping
//
// # Usage
//
//	analyzer := ir.NewAnalyzer(48000)
//	metrics, err := analyzer.Analyze(impulseResponse)
//	fmt.Printf("onset %d samples, T20 = %.2f s\n", metrics.Onset, metrics.T20)
package ir
