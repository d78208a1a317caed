package blackjack

import (
	"testing"

	"blackjack-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestScoreHand(t *testing.T) {
	tests := []struct {
		name  string
		hand  string
		score Score
	}{
		{"empty", "", Score{}},
		{"pair of tens", "Tc,Kd", Score{Soft: 20, Hard: 20}},
		{"natural", "Ah,Kd", Score{Soft: 11, Hard: 21, Natural: true}},
		{"natural ace last", "Qs,Ac", Score{Soft: 11, Hard: 21, Natural: true}},
		{"soft 17", "Ah,6c", Score{Soft: 7, Hard: 17}},
		{"two aces", "Ah,Ac", Score{Soft: 2, Hard: 12}},
		{"ace forced low", "Ah,5c,8d", Score{Soft: 14, Hard: 14}},
		{"three card 21", "Jc,5c,6c", Score{Soft: 21, Hard: 21}},
		{"ace after twenty", "Jc,Qc,Ac", Score{Soft: 21, Hard: 21}},
		{"bust", "Tc,5c,8c", Score{Soft: 23, Hard: 23, Bust: true}},
		{"four aces", "Ac,Ad,Ah,As", Score{Soft: 4, Hard: 14}},
		{"aces resolved greedily", "Tc,Ac,Ad", Score{Soft: 12, Hard: 22, Bust: true}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.score, ScoreHand(deck.CardsFromString(test.hand)))
		})
	}
}

func TestScoreHand_IgnoresSuit(t *testing.T) {
	for suit := deck.Clubs; suit <= deck.Spades; suit++ {
		hand := []deck.Card{deck.FromValue(deck.Ace, suit), deck.FromValue(deck.Nine, (suit+1)%4)}
		assert.Equal(t, Score{Soft: 10, Hard: 20}, ScoreHand(hand))
	}
}

func TestCompare(t *testing.T) {
	natural := Score{Soft: 11, Hard: 21, Natural: true}
	twenty := Score{Soft: 20, Hard: 20}
	eighteen := Score{Soft: 18, Hard: 18}
	bust := Score{Soft: 24, Hard: 24, Bust: true}
	twentyOne := Score{Soft: 21, Hard: 21}

	assert.Equal(t, OutcomeLose, Compare(bust, bust))
	assert.Equal(t, OutcomeLose, Compare(bust, eighteen))
	assert.Equal(t, OutcomeWin, Compare(eighteen, bust))
	assert.Equal(t, OutcomePush, Compare(natural, natural))
	assert.Equal(t, OutcomeNatural, Compare(natural, twentyOne))
	assert.Equal(t, OutcomeLose, Compare(twentyOne, natural))
	assert.Equal(t, OutcomeWin, Compare(twenty, eighteen))
	assert.Equal(t, OutcomePush, Compare(twenty, twenty))
	assert.Equal(t, OutcomeLose, Compare(eighteen, twenty))
}

func TestWinnings(t *testing.T) {
	assert.Equal(t, int64(100), Winnings(OutcomeWin, 100))
	assert.Equal(t, int64(150), Winnings(OutcomeNatural, 100))
	assert.Equal(t, int64(7), Winnings(OutcomeNatural, 5))
	assert.Equal(t, int64(0), Winnings(OutcomePush, 100))
	assert.Equal(t, int64(-100), Winnings(OutcomeLose, 100))
}
