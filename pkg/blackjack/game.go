package blackjack

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/ledger"

	"github.com/sirupsen/logrus"
)

// Ledger is the balance book a game settles against
type Ledger interface {
	Adjust(roomID int64, address string, delta int64, reason ledger.Reason)
}

// Game is the session of a single room
// A Game is not safe for concurrent use, every operation must complete before the next begins.
type Game struct {
	id      int64
	options Options
	dealer  string
	stage   Stage
	round   int64

	dealerHand   deck.Hand
	participants []*Participant
	currentIndex int

	used    *deck.Used
	source  deck.Source
	entropy deck.Entropy
	ledger  Ledger

	nonce   int64
	outbox  []Event
	results *RoundResults

	logger logrus.FieldLogger
}

// Config are the collaborators of a game
type Config struct {
	ID      int64
	Dealer  string
	Options Options
	Source  deck.Source
	Entropy deck.Entropy
	Ledger  Ledger
	Logger  logrus.FieldLogger
}

// NewGame returns a game waiting for players
func NewGame(cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	entropy := cfg.Entropy
	if entropy == nil {
		entropy = deck.FixedEntropy(cfg.ID)
	}

	source := cfg.Source
	if source == nil {
		source = deck.NewSeeded(entropy.Seed(cfg.ID, 0))
	}

	return &Game{
		id:           cfg.ID,
		options:      cfg.Options,
		dealer:       cfg.Dealer,
		stage:        StageWaitingForPlayersAndBetting,
		dealerHand:   make(deck.Hand, 0, 5),
		participants: make([]*Participant, 0, cfg.Options.MaxPlayers),
		currentIndex: -1,
		used:         &deck.Used{},
		source:       source,
		entropy:      entropy,
		ledger:       cfg.Ledger,
		logger: logger.WithFields(logrus.Fields{
			"room":   cfg.ID,
			"dealer": cfg.Dealer,
		}),
	}
}

// Clone returns a deep copy of the game
// The ledger and logger are shared, the card source is cloned at its position.
func (g *Game) Clone() *Game {
	cp := *g
	cp.dealerHand = g.dealerHand.Clone()
	cp.participants = make([]*Participant, len(g.participants))
	for i, p := range g.participants {
		cp.participants[i] = p.clone()
	}

	cp.used = g.used.Clone()
	cp.source = g.source.Clone()
	cp.outbox = append([]Event{}, g.outbox...)
	if g.results != nil {
		r := *g.results
		cp.results = &r
	}

	return &cp
}

// SetSource replaces the card source
func (g *Game) SetSource(source deck.Source) {
	g.source = source
}

// ID returns the room ID
func (g *Game) ID() int64 {
	return g.id
}

// Dealer returns the dealer's address
func (g *Game) Dealer() string {
	return g.dealer
}

// Stage returns the current stage
func (g *Game) Stage() Stage {
	return g.stage
}

// PlayerCount returns the number of seated players
func (g *Game) PlayerCount() int {
	return len(g.participants)
}

// Players returns the addresses of the players in join order
func (g *Game) Players() []string {
	addrs := make([]string, len(g.participants))
	for i, p := range g.participants {
		addrs[i] = p.Address
	}

	return addrs
}

// IsMember returns true if the address is the dealer or a player
func (g *Game) IsMember(address string) bool {
	return address == g.dealer || g.participantIndex(address) >= 0
}

func (g *Game) participantIndex(address string) int {
	for i, p := range g.participants {
		if p.Address == address {
			return i
		}
	}

	return -1
}

func (g *Game) participant(address string) (*Participant, error) {
	i := g.participantIndex(address)
	if i < 0 {
		return nil, ErrNotAMember
	}

	return g.participants[i], nil
}

func (g *Game) requireStage(op string, stages ...Stage) error {
	if g.stage == StageDestroyed {
		return ErrRoomDestroyed
	}

	for _, s := range stages {
		if g.stage == s {
			return nil
		}
	}

	return StageError{Op: op, Got: g.stage}
}

func (g *Game) setStage(stage Stage) {
	if g.stage == stage {
		return
	}

	g.logger.WithFields(logrus.Fields{
		"from": g.stage.String(),
		"to":   stage.String(),
	}).Debug("stage changed")

	g.stage = stage
	g.emit(EventGameStageChanged, StageData{Stage: stage})
}

// Join seats the address as a player
func (g *Game) Join(address string) error {
	if err := g.requireStage("join", StageWaitingForPlayersAndBetting, StageEnded); err != nil {
		return err
	}

	if g.IsMember(address) {
		return ErrAlreadyMember
	}

	if len(g.participants) >= g.options.MaxPlayers {
		return ErrRoomFull
	}

	g.participants = append(g.participants, NewParticipant(address))
	g.logger.WithField("player", address).Debug("player joined")
	g.emit(EventPlayerJoined, PlayerData{Address: address})
	return nil
}

// PlaceBet debits the amount from the player and places it in escrow
func (g *Game) PlaceBet(address string, amount int64) error {
	if err := g.requireStage("bet", StageWaitingForPlayersAndBetting); err != nil {
		return err
	}

	p, err := g.participant(address)
	if err != nil {
		return err
	}

	if p.bet != 0 {
		return ErrAlreadyBet
	}

	if !g.options.validBet(amount) {
		return g.options.betError(amount)
	}

	g.ledger.Adjust(g.id, address, -amount, ledger.ReasonBet)
	p.bet = amount

	g.logger.WithFields(logrus.Fields{"player": address, "bet": amount}).Debug("bet placed")
	g.emit(EventPlayerBetted, BetData{Address: address, Bet: amount})
	return nil
}

// Leave removes the address from the room
// If the dealer leaves, the room is destroyed and destroyed is true.
func (g *Game) Leave(address string) (destroyed bool, err error) {
	if g.stage == StageDestroyed {
		return false, ErrRoomDestroyed
	}

	if address == g.dealer {
		g.dealerLeave()
		return true, nil
	}

	i := g.participantIndex(address)
	if i < 0 {
		return false, ErrNotAMember
	}

	p := g.participants[i]
	switch {
	case g.stage == StageWaitingForPlayersAndBetting:
		g.ledger.Adjust(g.id, address, p.bet, ledger.ReasonRefund)
	case g.stage.InRound() && p.hasStake():
		// the stake is forfeited to the dealer
		g.ledger.Adjust(g.id, g.dealer, p.bet, ledger.ReasonForfeit)
	}

	g.participants = append(g.participants[:i], g.participants[i+1:]...)
	g.logger.WithField("player", address).Debug("player left")
	g.emit(EventPlayerLeft, PlayerData{Address: address})

	if g.stage == StagePlayersTurn {
		switch {
		case i < g.currentIndex:
			g.setCurrentIndex(g.currentIndex - 1)
		case i == g.currentIndex:
			// the next player slid into the vacated index
			g.currentIndex = -1
			if err := g.advanceFrom(i); err != nil {
				return false, err
			}
		}
	}

	return false, nil
}

func (g *Game) dealerLeave() {
	switch {
	case g.stage == StageWaitingForPlayersAndBetting:
		for _, p := range g.participants {
			g.ledger.Adjust(g.id, p.Address, p.bet, ledger.ReasonRefund)
		}
	case g.stage.InRound():
		// the house cannot abscond, every outstanding stake is paid as a win
		for _, p := range g.participants {
			if !p.hasStake() {
				continue
			}

			g.ledger.Adjust(g.id, p.Address, 2*p.bet, ledger.ReasonForfeit)
			g.ledger.Adjust(g.id, g.dealer, -p.bet, ledger.ReasonForfeit)
			p.settled = true
			p.outcome = p.bet
		}
	}

	g.logger.Debug("dealer left, destroying room")
	g.emit(EventPlayerLeft, PlayerData{Address: g.dealer})
	g.currentIndex = -1
	g.setStage(StageDestroyed)
}

// SetReadyForNextRound flags whether the player wants another round
func (g *Game) SetReadyForNextRound(address string, ready bool) error {
	if err := g.requireStage("set ready", StageEnded); err != nil {
		return err
	}

	p, err := g.participant(address)
	if err != nil {
		return err
	}

	p.readyForNextRound = ready
	g.emit(EventPlayerReadyForNextRoundChanged, ReadyData{Address: address, Ready: ready})
	return nil
}

// NextRound clears the table once every player is ready
func (g *Game) NextRound(caller string) error {
	if err := g.requireStage("start the next round", StageEnded); err != nil {
		return err
	}

	if !g.IsMember(caller) {
		return ErrNotAMember
	}

	for _, p := range g.participants {
		if !p.readyForNextRound {
			return ErrNotAllPlayersReady
		}
	}

	for _, p := range g.participants {
		p.resetRound()
	}

	g.dealerHand = make(deck.Hand, 0, 5)
	g.used.Reset()
	g.currentIndex = -1
	g.results = nil
	g.setStage(StageWaitingForPlayersAndBetting)
	return nil
}
