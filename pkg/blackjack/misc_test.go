package blackjack

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage(t *testing.T) {
	assert.Equal(t, "WaitingForPlayersAndBetting", StageWaitingForPlayersAndBetting.String())
	assert.Equal(t, "Destroyed", StageDestroyed.String())
	assert.Equal(t, "Stage(9)", Stage(9).String())

	b, err := json.Marshal(StagePlayersTurn)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":2,"name":"PlayersTurn"}`, string(b))

	assert.True(t, StageWaitingForPlayersAndBetting.Discoverable())
	assert.True(t, StageEnded.Discoverable())
	assert.False(t, StagePlayersTurn.Discoverable())
	assert.False(t, StageDestroyed.Discoverable())
}

func TestDecisionFromString(t *testing.T) {
	d, err := DecisionFromString("hit")
	assert.NoError(t, err)
	assert.Equal(t, Hit, d)

	d, err = DecisionFromString("Stand")
	assert.NoError(t, err)
	assert.Equal(t, Stand, d)

	d, err = DecisionFromString("1")
	assert.NoError(t, err)
	assert.Equal(t, Hit, d)

	_, err = DecisionFromString("2")
	assert.EqualError(t, err, "invalid decision: 2")

	_, err = DecisionFromString("double")
	assert.EqualError(t, err, "invalid decision: double")

	b, _ := json.Marshal(Hit)
	assert.Equal(t, `{"id":1,"name":"Hit"}`, string(b))
}

func TestErrors(t *testing.T) {
	err := error(StageError{Op: "bet", Got: StagePlayersTurn})
	assert.EqualError(t, err, "cannot bet during PlayersTurn")
	assert.True(t, errors.Is(err, ErrWrongStage))

	err = BetError{Min: 5, Max: 1000, Got: 1}
	assert.EqualError(t, err, "expected bet of 5–1000, got 1")
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	err = BetError{Min: 1, Got: 0}
	assert.EqualError(t, err, "expected bet of at least 1, got 0")
}
