package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Size is the number of cards in a single deck
const Size = 52

// Value is the face value of a card, Two through Ace
type Value int

// value constants
const (
	Two Value = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit represents a card suit
// Suits are cosmetic, scoring never looks at them
type Suit int

// suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Card is an individual playing card identified by its index in an unshuffled deck
type Card struct {
	Index int
}

// New returns the card for the index
func New(index int) (Card, error) {
	if index < 0 || index >= Size {
		return Card{}, fmt.Errorf("expected index in [0,%d), got %d", Size, index)
	}

	return Card{Index: index}, nil
}

// FromValue returns the card with the value and suit
func FromValue(value Value, suit Suit) Card {
	return Card{Index: int(suit)*13 + int(value)}
}

// Value returns the face value of the card
func (c Card) Value() Value {
	return Value(c.Index % 13)
}

// Suit returns the suit of the card
func (c Card) Suit() Suit {
	return Suit(c.Index / 13)
}

// Pips returns the score of a non-Ace card (Two=2 ... King=10)
// An Ace returns 11, the evaluator decides whether it counts as 1
func (c Card) Pips() int {
	v := c.Value()
	switch {
	case v == Ace:
		return 11
	case v >= Ten:
		return 10
	default:
		return int(v) + 2
	}
}

// MarshalJSON encodes the card as its index
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Index)
}

// UnmarshalJSON decodes a card index
func (c *Card) UnmarshalJSON(b []byte) error {
	var index int
	if err := json.Unmarshal(b, &index); err != nil {
		return err
	}

	card, err := New(index)
	if err != nil {
		return err
	}

	*c = card
	return nil
}

var valueRunes = "23456789TJQKA"
var suitRunes = "cdhs"

func (c Card) String() string {
	return fmt.Sprintf("%c%c", valueRunes[c.Value()], suitRunes[c.Suit()])
}

func (v Value) String() string {
	switch v {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	case Ten:
		return "Ten"
	}

	return fmt.Sprintf("%d", int(v)+2)
}

var cardRx = regexp.MustCompile(`(?i)^([2-9tjqka])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <value><suit>, e.g., "Ah" or "tc"
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	value := strings.IndexByte(valueRunes, strings.ToUpper(match[1])[0])
	suit := strings.IndexByte(suitRunes, strings.ToLower(match[2])[0])

	return FromValue(Value(value), Suit(suit))
}

// CardsFromString will return a slice of cards from a comma separated list
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		cards[i] = CardFromString(part)
	}

	return cards
}

// CardsToString will convert a slice of cards to a string in the format of Ah,Tc,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}
