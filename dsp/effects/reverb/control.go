package reverb

import (
	"fmt"
	"math"
	"sync/atomic"
)

// ParamStore publishes parameters from a control thread to the audio thread
// without locks. Each parameter is an independent atomic value: a Snapshot
// taken concurrently with updates may mix old and new values of different
// parameters, but never a torn value of a single one.
type ParamStore struct {
	values [paramCount]atomic.Uint64
}

// NewParamStore returns a store holding the default parameters.
func NewParamStore() *ParamStore {
	s := &ParamStore{}
	s.Load(DefaultParameters())

	return s
}

// Set stores the clamped value v for id. Unknown ids are ignored.
func (s *ParamStore) Set(id ParamID, v float64) {
	d, ok := DescriptorFor(id)
	if !ok {
		return
	}

	s.values[id].Store(math.Float64bits(d.Clamp(v)))
}

// SetByKey stores v for the parameter with the given key.
func (s *ParamStore) SetByKey(key string, v float64) error {
	d, ok := LookupParam(key)
	if !ok {
		return fmt.Errorf("reverb: unknown parameter %q", key)
	}

	s.Set(d.ID, v)

	return nil
}

// Get returns the current value of id.
func (s *ParamStore) Get(id ParamID) float64 {
	if id < 0 || id >= paramCount {
		return 0
	}

	return math.Float64frombits(s.values[id].Load())
}

// Nudge adds delta to id, clamping the result, and returns the new value.
func (s *ParamStore) Nudge(id ParamID, delta float64) float64 {
	d, ok := DescriptorFor(id)
	if !ok {
		return 0
	}

	for {
		oldBits := s.values[id].Load()
		next := d.Clamp(math.Float64frombits(oldBits) + delta)

		if s.values[id].CompareAndSwap(oldBits, math.Float64bits(next)) {
			return next
		}
	}
}

// Toggle flips a toggle parameter and returns its new state.
func (s *ParamStore) Toggle(id ParamID) bool {
	d, ok := DescriptorFor(id)
	if !ok || !d.Toggle {
		return false
	}

	for {
		oldBits := s.values[id].Load()

		next := 1.0
		if math.Float64frombits(oldBits) != 0 {
			next = 0
		}

		if s.values[id].CompareAndSwap(oldBits, math.Float64bits(next)) {
			return next != 0
		}
	}
}

// Load stores every field of p.
func (s *ParamStore) Load(p Parameters) {
	for id := range paramCount {
		s.Set(id, p.Value(id))
	}
}

// Snapshot reads every parameter once. The audio thread calls it at the
// start of each block.
func (s *ParamStore) Snapshot() Parameters {
	var p Parameters
	for id := range paramCount {
		p.Set(id, s.Get(id))
	}

	return p
}
