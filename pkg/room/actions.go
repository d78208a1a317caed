package room

import (
	"context"
	"fmt"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/casino"
)

// RoomCreated is the reply to createRoom
type RoomCreated struct {
	RoomID int64 `json:"roomId"`
}

// Balance is the reply to getBalance
type Balance struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// EventNonce is the reply to getEventNonce
type EventNonce struct {
	RoomID int64 `json:"roomId"`
	Nonce  int64 `json:"nonce"`
}

// Dispatch runs an inbound action on behalf of the address and returns its reply
func (p *PitBoss) Dispatch(ctx context.Context, address string, msg *PayloadIn) (interface{}, error) {
	data := msg.AdditionalData
	if data == nil {
		data = AdditionalData{}
	}

	// actions that do not need a room
	switch msg.Action {
	case "createRoom":
		name, err := data.requireString("name")
		if err != nil {
			return nil, err
		}

		var id int64
		err = p.Exec(ctx, func(c *casino.Casino) error {
			var err error
			id, err = c.CreateRoom(name, address)
			return err
		})

		return RoomCreated{RoomID: id}, err
	case "getRooms":
		var rooms []casino.RoomInfo
		err := p.Exec(ctx, func(c *casino.Casino) error {
			rooms = c.Rooms()
			return nil
		})

		return rooms, err
	case "getBalance":
		target, ok := data.GetString("address")
		if !ok {
			target = address
		}

		var balance int64
		err := p.Exec(ctx, func(c *casino.Casino) error {
			balance = c.Balance(target)
			return nil
		})

		return Balance{Address: target, Balance: balance}, err
	case "calculateHandScore":
		return casino.CalculateHandScore(msg.Cards), nil
	}

	roomID, err := data.requireInt64("roomId")
	if err != nil {
		return nil, err
	}

	switch msg.Action {
	case "joinRoom":
		return nil, p.Exec(ctx, func(c *casino.Casino) error {
			return c.JoinRoom(roomID, address)
		})
	case "leaveRoom":
		return nil, p.Exec(ctx, func(c *casino.Casino) error {
			return c.LeaveRoom(roomID, address)
		})
	case "placeBet":
		amount, err := data.requireInt64("amount")
		if err != nil {
			return nil, err
		}

		return nil, p.Exec(ctx, func(c *casino.Casino) error {
			return c.PlaceBet(roomID, address, amount)
		})
	case "startGame":
		return nil, p.Exec(ctx, func(c *casino.Casino) error {
			return c.StartGame(roomID, address)
		})
	case "playerDecision":
		decision, err := decisionFromPayload(data)
		if err != nil {
			return nil, err
		}

		return nil, p.Exec(ctx, func(c *casino.Casino) error {
			return c.PlayerDecision(roomID, address, decision)
		})
	case "setPlayerReadyForNextRound":
		ready, err := data.requireBool("ready")
		if err != nil {
			return nil, err
		}

		return nil, p.Exec(ctx, func(c *casino.Casino) error {
			return c.SetPlayerReadyForNextRound(roomID, address, ready)
		})
	case "nextRound":
		return nil, p.Exec(ctx, func(c *casino.Casino) error {
			return c.NextRound(roomID, address)
		})
	case "getRoom":
		var info casino.RoomInfo
		err := p.Exec(ctx, func(c *casino.Casino) error {
			var err error
			info, err = c.Room(roomID)
			return err
		})

		return info, err
	case "getRoomPlayers":
		var players []string
		err := p.Exec(ctx, func(c *casino.Casino) error {
			var err error
			players, err = c.RoomPlayers(roomID)
			return err
		})

		return players, err
	case "getGameState":
		var state *blackjack.GameState
		err := p.Exec(ctx, func(c *casino.Casino) error {
			var err error
			state, err = c.GameState(roomID)
			return err
		})

		return state, err
	case "getGameStatePlayer":
		target, ok := data.GetString("address")
		if !ok {
			target = address
		}

		var state *blackjack.PlayerState
		err := p.Exec(ctx, func(c *casino.Casino) error {
			var err error
			state, err = c.GameStatePlayer(roomID, target)
			return err
		})

		return state, err
	case "getEventNonce":
		var nonce int64
		err := p.Exec(ctx, func(c *casino.Casino) error {
			var err error
			nonce, err = c.EventNonce(roomID)
			return err
		})

		return EventNonce{RoomID: roomID, Nonce: nonce}, err
	}

	return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidPayload, msg.Action)
}

// decisions are sent either by name or by id
func decisionFromPayload(data AdditionalData) (blackjack.Decision, error) {
	if s, ok := data.GetString("decision"); ok {
		d, err := blackjack.DecisionFromString(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
		}

		return d, nil
	}

	id, ok := data.GetInt64("decision")
	if !ok || (id != int64(blackjack.Stand) && id != int64(blackjack.Hit)) {
		return 0, fmt.Errorf("%w: decision must be Stand or Hit", ErrInvalidPayload)
	}

	return blackjack.Decision(id), nil
}
