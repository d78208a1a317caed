package blackjack

import "blackjack-server/pkg/deck"

// GameState is the public state of a room
type GameState struct {
	RoomID             int64         `json:"roomId"`
	Stage              Stage         `json:"stage"`
	Round              int64         `json:"round"`
	Dealer             string        `json:"dealer"`
	DealerHand         deck.Hand     `json:"dealerHand"`
	Players            []string      `json:"players"`
	CurrentPlayerIndex int           `json:"currentPlayerIndex"`
	UsedCards          []deck.Card   `json:"usedCards"`
	EventNonce         int64         `json:"eventNonce"`
	Results            *RoundResults `json:"results,omitempty"`
}

// PlayerState is the state of a single seat (or the dealer)
type PlayerState struct {
	Address           string    `json:"address"`
	IsDealer          bool      `json:"isDealer"`
	Hand              deck.Hand `json:"hand"`
	Score             Score     `json:"score"`
	Bet               int64     `json:"bet"`
	ReadyForNextRound bool      `json:"readyForNextRound"`
	HasActed          bool      `json:"hasActed"`
	Outcome           int64     `json:"outcome"`
}

// State returns the public state
func (g *Game) State() *GameState {
	state := &GameState{
		RoomID:             g.id,
		Stage:              g.stage,
		Round:              g.round,
		Dealer:             g.dealer,
		DealerHand:         g.dealerHand.Clone(),
		Players:            g.Players(),
		CurrentPlayerIndex: g.currentIndex,
		UsedCards:          g.used.Cards(),
		EventNonce:         g.nonce,
	}

	if g.results != nil {
		r := *g.results
		state.Results = &r
	}

	return state
}

// PlayerState returns the state of the player or the dealer
func (g *Game) PlayerState(address string) (*PlayerState, error) {
	if address == g.dealer {
		return &PlayerState{
			Address:  g.dealer,
			IsDealer: true,
			Hand:     g.dealerHand.Clone(),
			Score:    ScoreHand(g.dealerHand),
			HasActed: g.stage == StageEnded,
		}, nil
	}

	p, err := g.participant(address)
	if err != nil {
		return nil, err
	}

	return &PlayerState{
		Address:           p.Address,
		Hand:              p.Hand(),
		Score:             p.Score(),
		Bet:               p.bet,
		ReadyForNextRound: p.readyForNextRound,
		HasActed:          p.hasActed,
		Outcome:           p.outcome,
	}, nil
}

// CurrentPlayer returns the address whose turn it is
func (g *Game) CurrentPlayer() (string, bool) {
	if g.stage != StagePlayersTurn || g.currentIndex < 0 {
		return "", false
	}

	return g.participants[g.currentIndex].Address, true
}
