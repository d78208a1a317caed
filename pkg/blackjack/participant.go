package blackjack

import "blackjack-server/pkg/deck"

// Participant is a player seated in a room
// The dealer is never a participant.
type Participant struct {
	Address           string
	hand              deck.Hand
	bet               int64
	readyForNextRound bool
	hasActed          bool

	// settled is true once the stake has left escrow (bust or settlement)
	settled bool
	outcome int64
}

// NewParticipant returns a new participant
func NewParticipant(address string) *Participant {
	return &Participant{
		Address: address,
		hand:    make(deck.Hand, 0, 5),
	}
}

// Hand returns a shallow copy of the participant's hand
func (p *Participant) Hand() deck.Hand {
	return p.hand.Clone()
}

// Bet returns the stake of the current round
func (p *Participant) Bet() int64 {
	return p.bet
}

// Score returns the score of the participant's hand
func (p *Participant) Score() Score {
	return ScoreHand(p.hand)
}

// canAct is true if the participant still has a decision to make
func (p *Participant) canAct() bool {
	if p.hasActed {
		return false
	}

	s := p.Score()
	return !s.Bust && !s.Natural
}

// hasStake is true if the participant's bet is still in escrow
func (p *Participant) hasStake() bool {
	return p.bet > 0 && !p.settled
}

func (p *Participant) resetRound() {
	p.hand = make(deck.Hand, 0, 5)
	p.bet = 0
	p.readyForNextRound = false
	p.hasActed = false
	p.settled = false
	p.outcome = 0
}

func (p *Participant) clone() *Participant {
	cp := *p
	cp.hand = p.hand.Clone()
	return &cp
}
