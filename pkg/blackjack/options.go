package blackjack

import (
	"math"
	"unicode/utf8"
)

// MaxStake is the largest bet any table accepts. A natural pays out
// two and a half stakes, which must fit in an int64.
const MaxStake = math.MaxInt64 / 4

// Options are the table rules of a room
type Options struct {
	MaxPlayers    int   // Default: 3
	MaxNameLength int   // Default: 32 bytes
	MinBet        int64 // Default: 1
	MaxBet        int64 // 0 means up to MaxStake
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		MaxPlayers:    3,
		MaxNameLength: 32,
		MinBet:        1,
		MaxBet:        0,
	}
}

func (o Options) validBet(amount int64) bool {
	if amount <= 0 || amount < o.MinBet || amount > MaxStake {
		return false
	}

	return o.MaxBet <= 0 || amount <= o.MaxBet
}

func (o Options) betError(amount int64) BetError {
	minBet := o.MinBet
	if minBet < 1 {
		minBet = 1
	}

	maxBet := o.MaxBet
	if maxBet > MaxStake || (maxBet <= 0 && amount > MaxStake) {
		maxBet = MaxStake
	}

	return BetError{Min: minBet, Max: maxBet, Got: amount}
}

// ValidName returns true if the room name is non-empty UTF-8 within the length bound
func (o Options) ValidName(name string) bool {
	if name == "" || !utf8.ValidString(name) {
		return false
	}

	return o.MaxNameLength <= 0 || len(name) <= o.MaxNameLength
}
