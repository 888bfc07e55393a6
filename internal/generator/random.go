package generator

import "math/rand/v2"

// Rand is the random source the generator draws pitches and octaves from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

const seedStream = 0x6d656c6f64796765

// NewRand returns a deterministic source for seed. It is not safe for
// concurrent use; every generation call builds its own.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}

// NewSeed draws a fresh seed from the runtime's global source. Seeds stay
// below 2^53 so they survive a round trip through JSON numbers.
func NewSeed() uint64 {
	return rand.Uint64() >> 11
}
