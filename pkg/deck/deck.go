package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrDeckExhausted is an error when Draw() is attempted and no card can be produced
var ErrDeckExhausted = errors.New("deck exhausted")

// Source supplies the next card for a round
// Implementations must be deterministic: the same seed (or script) and the same
// sequence of calls always produce the same cards.
type Source interface {
	// Shuffle starts a new round with the seed
	Shuffle(seed int64)

	// Draw returns a card that is not in used
	Draw(used *Used) (Card, error)

	// Clone returns an independent copy at the same position
	Clone() Source
}

// Entropy provides the seed for a round of a room
type Entropy interface {
	Seed(roomID, round int64) int64
}

// FixedEntropy derives every round seed from a single base seed
// This is the entropy a replicated runtime supplies, everything derived from it is reproducible.
type FixedEntropy int64

// Seed mixes the base seed with the room and round (splitmix64 finalizer)
func (f FixedEntropy) Seed(roomID, round int64) int64 {
	z := uint64(f) ^ uint64(roomID)<<32 ^ uint64(round)
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31

	return int64(z & 0x7fffffffffffffff)
}

// Seeded draws uniformly from the cards that have not been used yet
type Seeded struct {
	seed  int64
	calls int
	rng   *rand.Rand
}

// NewSeeded returns a seeded source
func NewSeeded(seed int64) *Seeded {
	s := &Seeded{}
	s.Shuffle(seed)
	return s
}

// Shuffle reseeds the source
func (s *Seeded) Shuffle(seed int64) {
	s.seed = seed
	s.calls = 0
	s.rng = rand.New(rand.NewSource(seed)) // nolint:gosec
}

// GetSeed returns the seed of the current round
func (s *Seeded) GetSeed() int64 {
	return s.seed
}

// Draw will draw the next card
// Collisions with used cards are redrawn, which keeps the distribution uniform over the remaining cards.
func (s *Seeded) Draw(used *Used) (Card, error) {
	if used.Len() >= Size {
		return Card{}, ErrDeckExhausted
	}

	for {
		s.calls++
		card := Card{Index: s.rng.Intn(Size)}
		if !used.Has(card) {
			return card, nil
		}
	}
}

// Clone replays the generator up to the current position
func (s *Seeded) Clone() Source {
	c := NewSeeded(s.seed)
	for i := 0; i < s.calls; i++ {
		c.rng.Intn(Size)
	}
	c.calls = s.calls

	return c
}

// Scripted returns cards from a fixed sequence
// If a scripted card is already used, the same value in the next free suit is returned.
type Scripted struct {
	cards []Card
	pos   int
}

// NewScripted returns a source that deals the cards in order
func NewScripted(cards ...Card) *Scripted {
	return &Scripted{cards: append([]Card{}, cards...)}
}

// NewScriptedValues returns a source that deals the values in order
func NewScriptedValues(values ...Value) *Scripted {
	cards := make([]Card, len(values))
	for i, v := range values {
		cards[i] = FromValue(v, Clubs)
	}

	return &Scripted{cards: cards}
}

// Shuffle is a no-op, the script is the deck
func (s *Scripted) Shuffle(int64) {}

// Draw will draw the next scripted card
func (s *Scripted) Draw(used *Used) (Card, error) {
	if s.pos >= len(s.cards) {
		return Card{}, ErrDeckExhausted
	}

	card := s.cards[s.pos]
	first := card.Suit()
	for suit := first; used.Has(card); {
		suit = (suit + 1) % 4
		if suit == first {
			return Card{}, fmt.Errorf("%w: no unused %s left", ErrDeckExhausted, card.Value())
		}

		card = FromValue(card.Value(), suit)
	}

	s.pos++
	return card, nil
}

// Remaining returns the number of scripted cards not dealt yet
func (s *Scripted) Remaining() int {
	return len(s.cards) - s.pos
}

// Clone returns a copy at the same position
func (s *Scripted) Clone() Source {
	return &Scripted{cards: s.cards, pos: s.pos}
}
