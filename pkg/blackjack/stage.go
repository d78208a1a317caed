package blackjack

import (
	"encoding/json"
	"fmt"
)

// Stage is the phase of a round
type Stage int

// stage constants, in order of progression
const (
	StageWaitingForPlayersAndBetting Stage = iota
	StageStarted
	StagePlayersTurn
	StageDealerTurn
	StageEnded
	StageDestroyed
)

func (s Stage) String() string {
	switch s {
	case StageWaitingForPlayersAndBetting:
		return "WaitingForPlayersAndBetting"
	case StageStarted:
		return "Started"
	case StagePlayersTurn:
		return "PlayersTurn"
	case StageDealerTurn:
		return "DealerTurn"
	case StageEnded:
		return "Ended"
	case StageDestroyed:
		return "Destroyed"
	}

	return fmt.Sprintf("Stage(%d)", int(s))
}

// MarshalJSON encodes the JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

// Discoverable returns true if a room in this stage is listed
func (s Stage) Discoverable() bool {
	return s == StageWaitingForPlayersAndBetting || s == StageEnded
}

// InRound returns true once cards are dealt and until the round is settled
func (s Stage) InRound() bool {
	return s == StageStarted || s == StagePlayersTurn || s == StageDealerTurn
}
