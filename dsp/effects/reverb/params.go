package reverb

import (
	"math"

	"github.com/cwbudde/ddxverb/dsp/core"
)

// ParamID identifies one user-facing reverb parameter.
type ParamID int

// Parameter identifiers, in descriptor order.
const (
	ParamDecay ParamID = iota
	ParamPredelay
	ParamDamping
	ParamDiffusion
	ParamHiCut
	ParamBassMultiply
	ParamWet
	ParamBypass
	ParamVectorized

	paramCount
)

// Descriptor describes the range, default and presentation of a parameter.
type Descriptor struct {
	ID      ParamID
	Key     string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Step    float64
	Toggle  bool
}

var descriptors = [paramCount]Descriptor{
	{ID: ParamDecay, Key: "decay", Name: "Decay Time", Unit: "s", Min: 2, Max: 20, Default: 5, Step: 0.1},
	{ID: ParamPredelay, Key: "predelay", Name: "Pre-Delay", Unit: "ms", Min: 0, Max: 500, Default: 50, Step: 1},
	{ID: ParamDamping, Key: "damping", Name: "Damping (Hi Decay)", Unit: "%", Min: 0, Max: 100, Default: 50, Step: 1},
	{ID: ParamDiffusion, Key: "diffusion", Name: "Diffusion", Min: 0, Max: 20, Default: 10, Step: 0.1},
	{ID: ParamHiCut, Key: "hicut", Name: "Hi Shelf Cut", Unit: "dB", Min: 0, Max: 30, Default: 0, Step: 0.1},
	{ID: ParamBassMultiply, Key: "bassmult", Name: "Bass Multiply", Min: -10, Max: 10, Default: 0, Step: 0.1},
	{ID: ParamWet, Key: "wet", Name: "Wet/Dry Mix", Min: 0, Max: 1, Default: 0.5, Step: 0.01},
	{ID: ParamBypass, Key: "bypass", Name: "Bypass", Max: 1, Toggle: true},
	{ID: ParamVectorized, Key: "simd", Name: "Use SIMD (Low CPU)", Max: 1, Toggle: true},
}

// Descriptors returns the descriptor table in ParamID order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors[:])

	return out
}

// DescriptorFor returns the descriptor of id.
func DescriptorFor(id ParamID) (Descriptor, bool) {
	if id < 0 || id >= paramCount {
		return Descriptor{}, false
	}

	return descriptors[id], true
}

// LookupParam finds a descriptor by its key, e.g. "decay".
func LookupParam(key string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Key == key {
			return d, true
		}
	}

	return Descriptor{}, false
}

// Clamp limits v to the descriptor's range. Toggles snap to 0 or 1 and
// NaN falls back to the default.
func (d Descriptor) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return d.Default
	}

	if d.Toggle {
		if v >= 0.5 {
			return 1
		}

		return 0
	}

	return core.Clamp(v, d.Min, d.Max)
}

func clampParam(id ParamID, v float64) float64 {
	return descriptors[id].Clamp(v)
}

// Parameters is one snapshot of the user-facing parameters. Fields are
// independent; each is clamped to its own range when consumed.
type Parameters struct {
	DecaySeconds   float64
	PredelayMs     float64
	DampingPercent float64
	Diffusion      float64
	HiCutDB        float64
	BassMultiply   float64
	Wet            float64
	Bypass         bool
	UseVectorized  bool
}

// DefaultParameters returns the default value of every parameter.
func DefaultParameters() Parameters {
	var p Parameters
	for _, d := range descriptors {
		p.Set(d.ID, d.Default)
	}

	return p
}

// Clamped returns a copy with every field limited to its range.
func (p Parameters) Clamped() Parameters {
	return Parameters{
		DecaySeconds:   clampParam(ParamDecay, p.DecaySeconds),
		PredelayMs:     clampParam(ParamPredelay, p.PredelayMs),
		DampingPercent: clampParam(ParamDamping, p.DampingPercent),
		Diffusion:      clampParam(ParamDiffusion, p.Diffusion),
		HiCutDB:        clampParam(ParamHiCut, p.HiCutDB),
		BassMultiply:   clampParam(ParamBassMultiply, p.BassMultiply),
		Wet:            clampParam(ParamWet, p.Wet),
		Bypass:         p.Bypass,
		UseVectorized:  p.UseVectorized,
	}
}

// Strategy returns the execution strategy selected by UseVectorized.
func (p Parameters) Strategy() Strategy {
	return StrategyFor(p.UseVectorized)
}

// Value returns the field identified by id; toggles read as 0 or 1.
func (p Parameters) Value(id ParamID) float64 {
	switch id {
	case ParamDecay:
		return p.DecaySeconds
	case ParamPredelay:
		return p.PredelayMs
	case ParamDamping:
		return p.DampingPercent
	case ParamDiffusion:
		return p.Diffusion
	case ParamHiCut:
		return p.HiCutDB
	case ParamBassMultiply:
		return p.BassMultiply
	case ParamWet:
		return p.Wet
	case ParamBypass:
		return boolToFloat(p.Bypass)
	case ParamVectorized:
		return boolToFloat(p.UseVectorized)
	default:
		return 0
	}
}

// Set assigns the clamped value v to the field identified by id.
// Unknown ids are ignored.
func (p *Parameters) Set(id ParamID, v float64) {
	d, ok := DescriptorFor(id)
	if !ok {
		return
	}

	v = d.Clamp(v)

	switch id {
	case ParamDecay:
		p.DecaySeconds = v
	case ParamPredelay:
		p.PredelayMs = v
	case ParamDamping:
		p.DampingPercent = v
	case ParamDiffusion:
		p.Diffusion = v
	case ParamHiCut:
		p.HiCutDB = v
	case ParamBassMultiply:
		p.BassMultiply = v
	case ParamWet:
		p.Wet = v
	case ParamBypass:
		p.Bypass = v != 0
	case ParamVectorized:
		p.UseVectorized = v != 0
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
