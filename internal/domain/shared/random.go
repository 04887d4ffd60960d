package shared

import (
	"math/rand/v2"
)

// RandomSource is an abstraction for random draws, allowing draws to be scripted in tests
type RandomSource interface {
	// IntRange returns a uniform integer in [lo, hi].
	IntRange(lo, hi int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// SeededRandom implements RandomSource with a PCG generator so a seed fully
// determines a run.
type SeededRandom struct {
	pcg *rand.PCG
	rng *rand.Rand
}

// NewSeededRandom creates a SeededRandom from a single seed
func NewSeededRandom(seed uint64) *SeededRandom {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &SeededRandom{pcg: pcg, rng: rand.New(pcg)}
}

func (s *SeededRandom) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

func (s *SeededRandom) Float64() float64 {
	return s.rng.Float64()
}

// State returns the generator state for save games.
func (s *SeededRandom) State() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

// Restore resumes the generator from a State() blob.
func (s *SeededRandom) Restore(state []byte) error {
	return s.pcg.UnmarshalBinary(state)
}

// ScriptedRandom implements RandomSource with queued values for testing.
// Exhausted queues fall back to 0 clamped into the requested range.
type ScriptedRandom struct {
	Ints   []int
	Floats []float64
}

// NewScriptedRandom creates a ScriptedRandom that returns ints in order
func NewScriptedRandom(ints ...int) *ScriptedRandom {
	return &ScriptedRandom{Ints: ints}
}

func (s *ScriptedRandom) IntRange(lo, hi int) int {
	v := 0
	if len(s.Ints) > 0 {
		v = s.Ints[0]
		s.Ints = s.Ints[1:]
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *ScriptedRandom) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// PushInts appends values to the int queue
func (s *ScriptedRandom) PushInts(v ...int) {
	s.Ints = append(s.Ints, v...)
}

// PushFloats appends values to the float queue
func (s *ScriptedRandom) PushFloats(v ...float64) {
	s.Floats = append(s.Floats, v...)
}
