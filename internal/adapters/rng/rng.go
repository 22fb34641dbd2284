// Package rng provides seedable random sources for the engine.
package rng

import (
	"math/rand/v2"
)

// Source is a seeded PCG generator. It is not safe for concurrent use.
type Source struct {
	r *rand.Rand
}

func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewSeed returns a random seed from the auto-seeded global source.
func NewSeed() uint64 {
	return rand.Uint64()
}

func (s *Source) Intn(n int) int {
	return s.r.IntN(n)
}

// Uint64 exposes the raw stream for deriving child seeds.
func (s *Source) Uint64() uint64 {
	return s.r.Uint64()
}
