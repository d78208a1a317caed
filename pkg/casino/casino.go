package casino

import (
	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/ledger"

	"github.com/sirupsen/logrus"
)

// SourceFactory returns the card source of a new room
// A nil factory (or a nil source) uses a seeded source driven by the casino's entropy.
type SourceFactory func(roomID int64) deck.Source

// Config are the collaborators of a casino
type Config struct {
	Options   blackjack.Options
	Entropy   deck.Entropy
	NewSource SourceFactory
	Book      *ledger.Book
	Logger    logrus.FieldLogger

	// FirstRoomID is the id of the first room created, ids never repeat after it
	FirstRoomID int64
}

type room struct {
	id      int64
	name    string
	creator string
	game    *blackjack.Game
}

// Casino is the registry of every room and the owner of the balance book
// A Casino is not safe for concurrent use. Every operation either commits all of its
// effects or fails with no effect at all.
type Casino struct {
	options   blackjack.Options
	entropy   deck.Entropy
	newSource SourceFactory
	book      *ledger.Book
	logger    logrus.FieldLogger

	rooms  map[int64]*room
	order  []int64
	nextID int64
	outbox []blackjack.Event
}

// New returns an empty casino
func New(cfg Config) *Casino {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	book := cfg.Book
	if book == nil {
		book = ledger.NewBook()
	}

	entropy := cfg.Entropy
	if entropy == nil {
		entropy = deck.FixedEntropy(0)
	}

	nextID := cfg.FirstRoomID
	if nextID < 1 {
		nextID = 1
	}

	return &Casino{
		options:   cfg.Options,
		entropy:   entropy,
		newSource: cfg.NewSource,
		book:      book,
		logger:    logger,
		rooms:     make(map[int64]*room),
		nextID:    nextID,
	}
}

// Book returns the balance book
func (c *Casino) Book() *ledger.Book {
	return c.book
}

// Options returns the table rules every room is created with
func (c *Casino) Options() blackjack.Options {
	return c.options
}

func (c *Casino) room(roomID int64) (*room, error) {
	r, ok := c.rooms[roomID]
	if !ok {
		return nil, blackjack.ErrRoomNotFound
	}

	if r.game.Stage() == blackjack.StageDestroyed {
		return nil, blackjack.ErrRoomDestroyed
	}

	return r, nil
}

// atomically runs fn against the room's game
// On error the game, its card source and the book are restored to where they were.
func (c *Casino) atomically(roomID int64, fn func(g *blackjack.Game) error) error {
	r, err := c.room(roomID)
	if err != nil {
		return err
	}

	snapshot := r.game.Clone()
	mark := c.book.Mark()

	if err := fn(r.game); err != nil {
		r.game = snapshot
		c.book.Rollback(mark)
		return err
	}

	c.outbox = append(c.outbox, r.game.Drain()...)
	return nil
}

// CreateRoom opens a room with the creator as its dealer
func (c *Casino) CreateRoom(name, creator string) (int64, error) {
	if !c.options.ValidName(name) || creator == "" {
		return 0, blackjack.ErrInvalidName
	}

	id := c.nextID
	c.nextID++

	var source deck.Source
	if c.newSource != nil {
		source = c.newSource(id)
	}

	r := &room{
		id:      id,
		name:    name,
		creator: creator,
		game: blackjack.NewGame(blackjack.Config{
			ID:      id,
			Dealer:  creator,
			Options: c.options,
			Source:  source,
			Entropy: c.entropy,
			Ledger:  c.book,
			Logger:  c.logger,
		}),
	}

	c.rooms[id] = r
	c.order = append(c.order, id)

	c.logger.WithFields(logrus.Fields{
		"room":    id,
		"name":    name,
		"creator": creator,
	}).Info("room created")

	c.outbox = append(c.outbox, blackjack.Event{
		Type:   blackjack.EventRoomCreated,
		RoomID: id,
		Global: true,
		Data:   blackjack.RoomCreatedData{Creator: creator, Name: name},
	})

	return id, nil
}

// JoinRoom seats the address as a player
func (c *Casino) JoinRoom(roomID int64, address string) error {
	return c.atomically(roomID, func(g *blackjack.Game) error {
		return g.Join(address)
	})
}

// LeaveRoom removes the address from the room
// When the dealer leaves the room is destroyed and its id answers ErrRoomDestroyed from then on.
func (c *Casino) LeaveRoom(roomID int64, address string) error {
	return c.atomically(roomID, func(g *blackjack.Game) error {
		destroyed, err := g.Leave(address)
		if err != nil {
			return err
		}

		if destroyed {
			c.logger.WithField("room", roomID).Info("room destroyed")
		}

		return nil
	})
}

// PlaceBet places the player's stake
func (c *Casino) PlaceBet(roomID int64, address string, amount int64) error {
	return c.atomically(roomID, func(g *blackjack.Game) error {
		return g.PlaceBet(address, amount)
	})
}

// StartGame deals the round
func (c *Casino) StartGame(roomID int64, caller string) error {
	return c.atomically(roomID, func(g *blackjack.Game) error {
		return g.Start(caller)
	})
}

// PlayerDecision applies a Stand or Hit
func (c *Casino) PlayerDecision(roomID int64, address string, decision blackjack.Decision) error {
	return c.atomically(roomID, func(g *blackjack.Game) error {
		return g.Decide(address, decision)
	})
}

// SetPlayerReadyForNextRound flags whether the player wants another round
func (c *Casino) SetPlayerReadyForNextRound(roomID int64, address string, ready bool) error {
	return c.atomically(roomID, func(g *blackjack.Game) error {
		return g.SetReadyForNextRound(address, ready)
	})
}

// NextRound clears the table for a new round of betting
func (c *Casino) NextRound(roomID int64, caller string) error {
	return c.atomically(roomID, func(g *blackjack.Game) error {
		return g.NextRound(caller)
	})
}

// SetSource replaces the card source of a room
func (c *Casino) SetSource(roomID int64, source deck.Source) error {
	r, err := c.room(roomID)
	if err != nil {
		return err
	}

	r.game.SetSource(source)
	return nil
}

// Drain returns the pending notifications, in the order they were produced, and clears them
func (c *Casino) Drain() []blackjack.Event {
	events := c.outbox
	c.outbox = nil

	return events
}

// DrainJournal returns the committed balance changes and clears them
func (c *Casino) DrainJournal() []ledger.Entry {
	return c.book.Drain()
}
