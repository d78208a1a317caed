package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_ValueAndSuit(t *testing.T) {
	card := Card{Index: 5}
	assert.Equal(t, Seven, card.Value())
	assert.Equal(t, Clubs, card.Suit())

	card = Card{Index: 14}
	assert.Equal(t, Three, card.Value())
	assert.Equal(t, Diamonds, card.Suit())

	card = Card{Index: 51}
	assert.Equal(t, Ace, card.Value())
	assert.Equal(t, Spades, card.Suit())
}

func TestNew(t *testing.T) {
	card, err := New(12)
	assert.NoError(t, err)
	assert.Equal(t, Ace, card.Value())

	_, err = New(52)
	assert.EqualError(t, err, "expected index in [0,52), got 52")

	_, err = New(-1)
	assert.Error(t, err)
}

func TestCard_Pips(t *testing.T) {
	assert.Equal(t, 2, FromValue(Two, Hearts).Pips())
	assert.Equal(t, 9, FromValue(Nine, Hearts).Pips())
	assert.Equal(t, 10, FromValue(Ten, Hearts).Pips())
	assert.Equal(t, 10, FromValue(Jack, Clubs).Pips())
	assert.Equal(t, 10, FromValue(King, Spades).Pips())
	assert.Equal(t, 11, FromValue(Ace, Spades).Pips())
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2h", FromValue(Two, Hearts).String())
	assert.Equal(t, "Jc", FromValue(Jack, Clubs).String())
	assert.Equal(t, "Qd", FromValue(Queen, Diamonds).String())
	assert.Equal(t, "As", FromValue(Ace, Spades).String())
	assert.Equal(t, "Ts", FromValue(Ten, Spades).String())
}

func TestCardFromString(t *testing.T) {
	assert.Equal(t, FromValue(Ace, Hearts), CardFromString("Ah"))
	assert.Equal(t, FromValue(Ten, Clubs), CardFromString("tc"))
	assert.Panics(t, func() { CardFromString("1h") })

	cards := CardsFromString("2c,Kd,As")
	assert.Equal(t, "2c,Kd,As", CardsToString(cards))
	assert.Equal(t, []Card{}, CardsFromString(""))
}

func TestCard_JSON(t *testing.T) {
	b, err := json.Marshal([]Card{{Index: 3}, {Index: 40}})
	assert.NoError(t, err)
	assert.Equal(t, "[3,40]", string(b))

	var cards []Card
	assert.NoError(t, json.Unmarshal(b, &cards))
	assert.Equal(t, []Card{{Index: 3}, {Index: 40}}, cards)

	assert.Error(t, json.Unmarshal([]byte("[52]"), &cards))
}
