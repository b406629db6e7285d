// Package rng defines the pluggable random source the processor library
// draws from. §9's design notes flag the source's use of a thread-local
// PRNG as a deliberate redesign point: every processor that needs
// randomness takes a Source instead of reaching for a package-global
// generator, so a host can inject a seeded Source for reproducible tests
// (§8 property 8, processor purity under a fixed seed) and the bench
// package can report stable numbers.
//
// © 2025 arena-cache authors. MIT License.
package rng

import "math/rand/v2"

// Source draws uniform pseudo-random values. No third-party RNG library
// appears anywhere in the retrieved example pack, so this sits directly on
// math/rand/v2 rather than an ecosystem dependency.
type Source interface {
	// Float32 returns a value in [0, 1).
	Float32() float32
	// Float32Range returns a value uniformly distributed in [lo, hi).
	Float32Range(lo, hi float32) float32
}

type mathRand struct {
	r *rand.Rand
}

// New returns a Source seeded from a fixed seed pair, for reproducible runs.
func New(seed1, seed2 uint64) Source {
	return &mathRand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// NewUnseeded returns a Source seeded from the runtime's default entropy
// source, for hosts that don't need reproducibility.
func NewUnseeded() Source {
	return &mathRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (m *mathRand) Float32() float32 {
	return m.r.Float32()
}

func (m *mathRand) Float32Range(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + m.r.Float32()*(hi-lo)
}
