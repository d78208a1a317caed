package casino

import (
	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
)

// RoomInfo describes a room
type RoomInfo struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Creator     string          `json:"creator"`
	PlayerCount int             `json:"playerCount"`
	Stage       blackjack.Stage `json:"stage"`
}

func (r *room) info() RoomInfo {
	return RoomInfo{
		ID:          r.id,
		Name:        r.name,
		Creator:     r.creator,
		PlayerCount: r.game.PlayerCount(),
		Stage:       r.game.Stage(),
	}
}

// Rooms returns the discoverable rooms in the order they were created
func (c *Casino) Rooms() []RoomInfo {
	rooms := make([]RoomInfo, 0, len(c.order))
	for _, id := range c.order {
		r := c.rooms[id]
		if !r.game.Stage().Discoverable() {
			continue
		}

		rooms = append(rooms, r.info())
	}

	return rooms
}

// Room returns a single room, discoverable or not
func (c *Casino) Room(roomID int64) (RoomInfo, error) {
	r, err := c.room(roomID)
	if err != nil {
		return RoomInfo{}, err
	}

	return r.info(), nil
}

// RoomPlayers returns the dealer followed by the players in join order
func (c *Casino) RoomPlayers(roomID int64) ([]string, error) {
	r, err := c.room(roomID)
	if err != nil {
		return nil, err
	}

	return append([]string{r.game.Dealer()}, r.game.Players()...), nil
}

// GameState returns the public state of the room
func (c *Casino) GameState(roomID int64) (*blackjack.GameState, error) {
	r, err := c.room(roomID)
	if err != nil {
		return nil, err
	}

	return r.game.State(), nil
}

// GameStatePlayer returns the state of a single seat, the dealer included
func (c *Casino) GameStatePlayer(roomID int64, address string) (*blackjack.PlayerState, error) {
	r, err := c.room(roomID)
	if err != nil {
		return nil, err
	}

	return r.game.PlayerState(address)
}

// EventNonce returns the sequence number of the room's next notification
func (c *Casino) EventNonce(roomID int64) (int64, error) {
	r, err := c.room(roomID)
	if err != nil {
		return 0, err
	}

	return r.game.EventNonce(), nil
}

// Balance returns the address's balance
func (c *Casino) Balance(address string) int64 {
	return c.book.Balance(address)
}

// CalculateHandScore scores an arbitrary hand
func CalculateHandScore(hand []deck.Card) blackjack.Score {
	return blackjack.ScoreHand(hand)
}
