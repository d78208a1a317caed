package blackjack

import (
	"errors"
	"fmt"

	"blackjack-server/pkg/deck"
)

// ErrInvalidName is returned when a room name is empty, not UTF-8 or too long
var ErrInvalidName = errors.New("invalid room name")

// ErrAlreadyMember is returned when the address is already the dealer or a player of the room
var ErrAlreadyMember = errors.New("already a member of the room")

// ErrNotAMember is returned when the address is not a player of the room
var ErrNotAMember = errors.New("not a member of the room")

// ErrRoomFull is returned when the room has no free seat
var ErrRoomFull = errors.New("room is full")

// ErrAlreadyBet is returned when the player has already placed a bet this round
var ErrAlreadyBet = errors.New("player has already bet")

// ErrInvalidAmount is returned for a bet outside the allowed range
var ErrInvalidAmount = errors.New("invalid bet amount")

// ErrNotAllPlayersReady is returned when the round cannot start or continue yet
var ErrNotAllPlayersReady = errors.New("not all players are ready")

// ErrWrongStage is returned when an operation is not valid in the current stage
var ErrWrongStage = errors.New("operation not valid in the current stage")

// ErrNotYourTurn is returned when a player acts out of turn
var ErrNotYourTurn = errors.New("not your turn")

// ErrDeckExhausted is returned when the card source cannot produce a card
var ErrDeckExhausted = deck.ErrDeckExhausted

// ErrRoomDestroyed is returned for any operation on a destroyed room
var ErrRoomDestroyed = errors.New("room destroyed")

// ErrRoomNotFound is returned for a room ID that was never issued
var ErrRoomNotFound = errors.New("room not found")

// StageError is an operation attempted in the wrong stage
type StageError struct {
	Op  string
	Got Stage
}

func (s StageError) Error() string {
	return fmt.Sprintf("cannot %s during %s", s.Op, s.Got)
}

// Unwrap allows errors.Is(err, ErrWrongStage)
func (s StageError) Unwrap() error {
	return ErrWrongStage
}

// BetError is a bet outside of the table limits
type BetError struct {
	Min int64
	Max int64
	Got int64
}

func (b BetError) Error() string {
	if b.Max > 0 {
		return fmt.Sprintf("expected bet of %d–%d, got %d", b.Min, b.Max, b.Got)
	}

	return fmt.Sprintf("expected bet of at least %d, got %d", b.Min, b.Got)
}

// Unwrap allows errors.Is(err, ErrInvalidAmount)
func (b BetError) Unwrap() error {
	return ErrInvalidAmount
}
