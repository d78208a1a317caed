package blackjack

import (
	"blackjack-server/pkg/ledger"

	"github.com/sirupsen/logrus"
)

// Outcome is the result of a player's hand against the dealer
type Outcome int

// outcome constants
const (
	OutcomeLose Outcome = iota
	OutcomePush
	OutcomeWin
	OutcomeNatural
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	case OutcomeNatural:
		return "natural"
	}

	return "unknown"
}

// Compare decides a player's hand against the dealer's hand
func Compare(player, dealer Score) Outcome {
	switch {
	case player.Bust:
		return OutcomeLose
	case dealer.Bust:
		return OutcomeWin
	case player.Natural && dealer.Natural:
		return OutcomePush
	case player.Natural:
		return OutcomeNatural
	case dealer.Natural:
		return OutcomeLose
	case player.Hard > dealer.Hard:
		return OutcomeWin
	case player.Hard == dealer.Hard:
		return OutcomePush
	}

	return OutcomeLose
}

// Winnings returns the player's net result for the outcome
// The natural bonus is 3:2, rounded down.
func Winnings(outcome Outcome, bet int64) int64 {
	switch outcome {
	case OutcomeWin:
		return bet
	case OutcomeNatural:
		return bet + bet/2
	case OutcomePush:
		return 0
	}

	return -bet
}

// settle pays every stake still in escrow, in player order
func (g *Game) settle() {
	dealerScore := ScoreHand(g.dealerHand)

	results := &RoundResults{
		Round:    g.round,
		Dealer:   g.dealer,
		Players:  make([]string, len(g.participants)),
		Outcomes: make([]int64, len(g.participants)),
	}

	for i, p := range g.participants {
		if !p.settled {
			outcome := Compare(p.Score(), dealerScore)
			p.outcome = Winnings(outcome, p.bet)
			p.settled = true

			switch {
			case p.outcome >= 0:
				g.ledger.Adjust(g.id, p.Address, p.bet+p.outcome, ledger.ReasonSettlement)
				g.ledger.Adjust(g.id, g.dealer, -p.outcome, ledger.ReasonSettlement)
			default:
				g.ledger.Adjust(g.id, g.dealer, p.bet, ledger.ReasonSettlement)
			}

			g.logger.WithFields(logrus.Fields{
				"player":  p.Address,
				"outcome": outcome.String(),
				"net":     p.outcome,
			}).Debug("player settled")
		}

		results.Players[i] = p.Address
		results.Outcomes[i] = p.outcome
		results.DealerOutcome -= p.outcome
	}

	g.results = results
	g.emit(EventGameRoundResultsAnnounced, *results)
}
