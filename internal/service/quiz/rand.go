package quiz

import "math/rand/v2"

// Rand is the randomness used by selection and shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// globalRand uses the goroutine-safe top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRand returns the process-wide random source.
func DefaultRand() Rand { return globalRand{} }
