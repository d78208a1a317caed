package blackjack

import (
	"fmt"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/ledger"

	"github.com/sirupsen/logrus"
)

// dealerStandsOn is the hard score at which the dealer stops drawing
const dealerStandsOn = 17

func (g *Game) draw() (deck.Card, error) {
	card, err := g.source.Draw(g.used)
	if err != nil {
		return deck.Card{}, err
	}

	g.used.Add(card)
	return card, nil
}

// Start deals the opening cards once every player has bet
func (g *Game) Start(caller string) error {
	if err := g.requireStage("start", StageWaitingForPlayersAndBetting); err != nil {
		return err
	}

	if !g.IsMember(caller) {
		return ErrNotAMember
	}

	if len(g.participants) == 0 {
		return ErrNotAllPlayersReady
	}

	for _, p := range g.participants {
		if p.bet == 0 {
			return ErrNotAllPlayersReady
		}
	}

	g.round++
	g.source.Shuffle(g.entropy.Seed(g.id, g.round))
	g.used.Reset()
	g.dealerHand = make(deck.Hand, 0, 5)
	g.results = nil
	g.setStage(StageStarted)

	// one card at a time: every player, the dealer, then every player again
	// the dealer's second card stays undealt until the dealer's turn
	for i := 0; i < 2; i++ {
		for _, p := range g.participants {
			card, err := g.draw()
			if err != nil {
				return err
			}

			p.hand.AddCard(card)
		}

		if i == 0 {
			card, err := g.draw()
			if err != nil {
				return err
			}

			g.dealerHand.AddCard(card)
		}
	}

	for _, p := range g.participants {
		if p.Score().Natural {
			p.hasActed = true
		}
	}

	g.logger.WithFields(logrus.Fields{
		"round":  g.round,
		"dealer": g.dealerHand.String(),
	}).Debug("cards dealt")

	return g.advanceFrom(0)
}

// Decide applies a player's decision on their turn
func (g *Game) Decide(address string, decision Decision) error {
	if err := g.requireStage("decide", StagePlayersTurn); err != nil {
		return err
	}

	i := g.participantIndex(address)
	if i < 0 {
		return ErrNotAMember
	}

	if i != g.currentIndex {
		return ErrNotYourTurn
	}

	if decision != Stand && decision != Hit {
		return fmt.Errorf("invalid decision: %d", int(decision))
	}

	p := g.participants[i]
	g.emit(EventPlayerDecisionReceived, DecisionData{Address: address, Decision: decision})

	switch decision {
	case Stand:
		p.hasActed = true
	case Hit:
		card, err := g.draw()
		if err != nil {
			return err
		}

		p.hand.AddCard(card)
		score := p.Score()
		if score.Bust {
			g.bust(p)
		} else if score.Hard == 21 {
			p.hasActed = true
		}
	}

	g.logger.WithFields(logrus.Fields{
		"player":   address,
		"decision": decision.String(),
		"hand":     p.hand.String(),
	}).Debug("player decided")

	if p.canAct() {
		return nil
	}

	return g.advanceFrom(i + 1)
}

// bust is an immediate, irrevocable loss: the stake goes to the dealer
func (g *Game) bust(p *Participant) {
	p.hasActed = true
	p.settled = true
	p.outcome = -p.bet
	g.ledger.Adjust(g.id, g.dealer, p.bet, ledger.ReasonSettlement)
}

func (g *Game) setCurrentIndex(i int) {
	if g.currentIndex == i {
		return
	}

	g.currentIndex = i
	data := CurrentPlayerData{Index: i}
	if i >= 0 {
		data.Address = g.participants[i].Address
	}

	g.emit(EventCurrentPlayerIndexChanged, data)
}

// advanceFrom moves the turn to the first player at or after i who can act
// If nobody can, the dealer plays and the round is settled.
func (g *Game) advanceFrom(i int) error {
	for j := i; j < len(g.participants); j++ {
		if g.participants[j].canAct() {
			g.setCurrentIndex(j)
			g.setStage(StagePlayersTurn)
			return nil
		}
	}

	g.setCurrentIndex(-1)
	return g.dealerTurn()
}

func (g *Game) dealerTurn() error {
	g.setStage(StageDealerTurn)

	for len(g.dealerHand) < 2 || ScoreHand(g.dealerHand).Hard < dealerStandsOn {
		card, err := g.draw()
		if err != nil {
			return err
		}

		g.dealerHand.AddCard(card)
	}

	g.logger.WithField("hand", g.dealerHand.String()).Debug("dealer played")

	g.setStage(StageEnded)
	g.settle()
	return nil
}
