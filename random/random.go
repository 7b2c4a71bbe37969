// Package random provides the bounded generators used for spawn placement
// and target tinting.
package random

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Source is a seedable random generator. It is not safe for concurrent use;
// the game owns one per session and only touches it from the tick goroutine.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom returns a Source seeded from the global generator.
func NewRandom() *Source {
	return New(rand.Uint64())
}

// Int returns a uniform integer in the closed range [min, max].
// The bounds are swapped if min > max.
func (s *Source) Int(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + s.rng.IntN(max-min+1)
}

// Float returns a uniform float in [min, max).
func (s *Source) Float(min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	return min + s.rng.Float64()*(max-min)
}

// Yaw returns a uniform angle in [0, 2π).
func (s *Source) Yaw() float64 {
	return s.Float(0, 2*math.Pi)
}

// Color picks a palette entry uniformly.
func (s *Source) Color() color.RGBA {
	return Palette[s.rng.IntN(len(Palette))]
}
