package rotation

import "math/rand/v2"

// Rand yields floats in [0, 1). A seeded instance must reproduce the same
// stream for the same seed so a draw can be replayed bit-for-bit.
type Rand func() float64

// NewSeeded returns a linear congruential generator. The constants match the
// historical draw implementation; changing them silently changes every seeded
// draw, so they are fixed. The state is normalized into [0, modulus) up front:
// Go's % truncates toward zero, so a negative seed would otherwise keep the
// state negative and push draws below zero.
func NewSeeded(seed int64) Rand {
	const modulus = 233280
	value := ((seed % modulus) + modulus) % modulus
	return func() float64 {
		value = (value*9301 + 49297) % modulus
		return float64(value) / modulus
	}
}

// NewSystem returns a non-deterministic generator for unseeded draws.
func NewSystem() Rand {
	return rand.Float64
}
