package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeded_Draw(t *testing.T) {
	a := assert.New(t)

	s := NewSeeded(1)
	used := &Used{}
	for i := 0; i < Size; i++ {
		card, err := s.Draw(used)
		a.NoError(err)
		a.False(used.Has(card), "card %s drawn twice", card)
		used.Add(card)
	}

	_, err := s.Draw(used)
	a.Equal(ErrDeckExhausted, err)
}

func TestSeeded_Deterministic(t *testing.T) {
	draw := func(seed int64) []Card {
		s := NewSeeded(seed)
		used := &Used{}
		for i := 0; i < 10; i++ {
			card, _ := s.Draw(used)
			used.Add(card)
		}

		return used.Cards()
	}

	assert.Equal(t, draw(42), draw(42))
	assert.NotEqual(t, draw(42), draw(43))
}

func TestSeeded_Clone(t *testing.T) {
	s := NewSeeded(7)
	used := &Used{}
	for i := 0; i < 5; i++ {
		card, _ := s.Draw(used)
		used.Add(card)
	}

	clone := s.Clone()
	usedClone := used.Clone()

	c1, _ := s.Draw(used)
	c2, _ := clone.Draw(usedClone)
	assert.Equal(t, c1, c2)
}

func TestSeeded_Shuffle(t *testing.T) {
	s := NewSeeded(1)
	assert.Equal(t, int64(1), s.GetSeed())
	first, _ := s.Draw(&Used{})

	s.Shuffle(99)
	s.Shuffle(1)
	again, _ := s.Draw(&Used{})
	assert.Equal(t, first, again)
}

func TestScripted_Draw(t *testing.T) {
	a := assert.New(t)

	s := NewScriptedValues(Five, Four, Jack)
	used := &Used{}
	for _, want := range []Value{Five, Four, Jack} {
		card, err := s.Draw(used)
		a.NoError(err)
		a.Equal(want, card.Value())
		used.Add(card)
	}

	a.Equal(0, s.Remaining())
	_, err := s.Draw(used)
	a.Equal(ErrDeckExhausted, err)
}

func TestScripted_DuplicateValues(t *testing.T) {
	a := assert.New(t)

	s := NewScriptedValues(Jack, Jack, Jack, Jack, Jack)
	used := &Used{}
	suits := make([]Suit, 0, 4)
	for i := 0; i < 4; i++ {
		card, err := s.Draw(used)
		a.NoError(err)
		a.Equal(Jack, card.Value())
		used.Add(card)
		suits = append(suits, card.Suit())
	}

	a.Equal([]Suit{Clubs, Diamonds, Hearts, Spades}, suits)

	_, err := s.Draw(used)
	a.True(errors.Is(err, ErrDeckExhausted))
	a.EqualError(err, "deck exhausted: no unused Jack left")
}

func TestScripted_Clone(t *testing.T) {
	s := NewScripted(Card{Index: 1}, Card{Index: 2})
	_, _ = s.Draw(&Used{})

	clone := s.Clone()
	_, _ = s.Draw(&Used{})

	card, err := clone.Draw(&Used{})
	assert.NoError(t, err)
	assert.Equal(t, Card{Index: 2}, card)
}

func TestFixedEntropy_Seed(t *testing.T) {
	e := FixedEntropy(1234)
	assert.Equal(t, e.Seed(1, 1), e.Seed(1, 1))
	assert.NotEqual(t, e.Seed(1, 1), e.Seed(1, 2))
	assert.NotEqual(t, e.Seed(1, 1), e.Seed(2, 1))
	assert.True(t, e.Seed(5, 9) >= 0)
}
