package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(5)] = true
	}

	a.True(found[0])
	a.True(found[1])
	a.True(found[2])
	a.True(found[3])
	a.True(found[4])
	a.False(found[5])
}

func TestCrypto_Seed(t *testing.T) {
	c := Crypto{}
	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		seed := c.Seed(1, 1)
		assert.True(t, seed >= 0)
		seen[seed] = true
	}

	// it's possible this could fail, but not likely
	assert.True(t, len(seen) > 90)
}
