package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sequence []int

func (s *sequence) Intn(n int) int {
	v := (*s)[0] % n
	*s = (*s)[1:]
	return v
}

func TestGetRandomName(t *testing.T) {
	gen := &sequence{0, 0, 7, 9, 33, 34}
	assert.Equal(t, "Fast Dog", GetRandomName(gen))
	assert.Equal(t, "Gracious Lion", GetRandomName(gen))
	assert.Equal(t, "Leaping Panda", GetRandomName(gen))
}
