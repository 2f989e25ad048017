// Package prng implements the deterministic, seedless random stream the
// pattern engine's randomness combinators are built on: every "random"
// value is actually a pure hash of the query time, so the same query
// always reproduces the same result.
package prng

import "math"

// xorwise is a 3-round xorshift over 32-bit signed integers:
// a = (x<<13)^x; b = (a>>17)^a; result = (b<<5)^b.
func xorwise(x int32) int32 {
	a := (x << 13) ^ x
	b := (a >> 17) ^ a
	return (b << 5) ^ b
}

// TimeToIntSeed hashes a time value into a 32-bit seed:
// xorwise(floor(frac(t/300) * 2^29)).
func TimeToIntSeed(t float64) int32 {
	q := t / 300
	frac := q - math.Floor(q)
	return xorwise(int32(math.Floor(frac * 536870912.0)))
}

// IntSeedToRand maps a hashed seed to a float in [0, 1).
func IntSeedToRand(seed int32) float64 {
	v := float64(seed) / 536870912.0
	v = v - float64(int64(v))
	if v < 0 {
		v++
	}
	return v
}

// TimeToRand hashes a time value directly to a float in [0, 1).
func TimeToRand(t float64) float64 {
	return IntSeedToRand(TimeToIntSeed(t))
}

// TimeToRands produces n deterministic floats in [0, 1) from a single time
// value, each derived by repeatedly re-hashing the seed - used where a
// single point in time needs several independent-looking random draws
// (e.g. picking both an index and a gate).
func TimeToRands(t float64, n int) []float64 {
	seed := TimeToIntSeed(t)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = IntSeedToRand(seed)
		seed = xorwise(seed)
	}
	return out
}
