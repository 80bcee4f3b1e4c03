// Package entropy supplies the simulation's random source. Every stochastic
// draw in a run comes from one seeded *rand.Rand so runs are reproducible;
// only the seed itself may come from crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// fallbackSeed is used if crypto/rand ever fails.
const fallbackSeed int64 = 0x5eed

// ResolveSeed returns seed unchanged when it is non-zero, otherwise a fresh
// seed from crypto/rand.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return CryptoSeed()
}

// NewRand returns a math/rand generator seeded with seed.
func NewRand(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// CryptoSeed draws a non-zero int64 seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen.
		return fallbackSeed
	}
	// Drop the sign bit so seeds print as positive numbers.
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		return fallbackSeed
	}
	return n
}

// Derive returns a sub-seed for an independent stream (e.g. noise fields),
// so adding draws to one stream never shifts another.
func Derive(seed int64, stream int64) int64 {
	return seed + stream*100
}
