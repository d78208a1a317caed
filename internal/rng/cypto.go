package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// Crypto wraps the crypto/rand library
// It is the entropy of the standalone server, a replicated runtime supplies its own.
type Crypto struct{}

// Intn returns a random number from 0 < n
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// Seed returns a non-negative random seed for the round
// The room and round are ignored, every call is fresh.
func (c Crypto) Seed(_, _ int64) int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}

	return int64(binary.BigEndian.Uint64(b[:]) & 0x7fffffffffffffff)
}
