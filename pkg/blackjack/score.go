package blackjack

import "blackjack-server/pkg/deck"

// Score is the evaluation of a hand
type Score struct {
	// Soft counts every Ace as 1
	Soft int `json:"soft"`
	// Hard counts an Ace as 11 unless that would take the total over 21
	Hard    int  `json:"hard"`
	Bust    bool `json:"bust"`
	Natural bool `json:"natural"`
}

// ScoreHand evaluates a hand
// Non-Ace cards are counted first. Each Ace is then resolved in hand order
// against the running hard total, so the result never depends on a global search.
func ScoreHand(hand []deck.Card) Score {
	base := 0
	aces := 0
	for _, card := range hand {
		if card.Value() == deck.Ace {
			aces++
			continue
		}

		base += card.Pips()
	}

	s := Score{Soft: base, Hard: base}
	for i := 0; i < aces; i++ {
		if s.Hard+11 > 21 {
			s.Hard++
		} else {
			s.Hard += 11
		}

		s.Soft++
	}

	s.Bust = s.Hard > 21
	s.Natural = len(hand) == 2 && s.Hard == 21
	return s
}
