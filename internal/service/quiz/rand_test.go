package quiz

import "math/rand/v2"

// seeded returns a deterministic source for reproducible draws.
func seeded() Rand {
	return rand.New(rand.NewPCG(42, 7))
}

// fixedRand always returns the same ticket and never reorders.
type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

func (fixedRand) Shuffle(int, func(i, j int)) {}
