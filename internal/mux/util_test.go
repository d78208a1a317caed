package mux

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/room"

	"github.com/stretchr/testify/assert"
)

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))
}

func Test_parsePaginationOptions(t *testing.T) {
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/"+queryString, nil)
		return req
	}

	start, rows, err := parsePaginationOptions(req(""))
	assert.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, defaultRows, rows)

	start, rows, err = parsePaginationOptions(req("?start=10&rows=25"))
	assert.NoError(t, err)
	assert.Equal(t, 10, start)
	assert.Equal(t, 25, rows)

	start, rows, err = parsePaginationOptions(req("?start=-1&rows=25"))
	assert.EqualError(t, err, "start cannot be less than zero")
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req("?start=0&rows=0"))
	assert.EqualError(t, err, "rows must be greater than zero")
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req(fmt.Sprintf("?start=0&rows=%d", maxRows+1)))
	assert.EqualError(t, err, fmt.Sprintf("rows cannot be greater than %d", maxRows))
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, rows)
}

func Test_statusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{blackjack.ErrRoomNotFound, http.StatusNotFound},
		{blackjack.ErrRoomDestroyed, http.StatusGone},
		{blackjack.ErrNotYourTurn, http.StatusForbidden},
		{blackjack.ErrNotAMember, http.StatusForbidden},
		{blackjack.ErrInvalidName, http.StatusBadRequest},
		{blackjack.BetError{Min: 5, Max: 1000, Got: 4}, http.StatusBadRequest},
		{fmt.Errorf("%w: amount must be an integer", room.ErrInvalidPayload), http.StatusBadRequest},
		{blackjack.ErrAlreadyMember, http.StatusConflict},
		{blackjack.ErrRoomFull, http.StatusConflict},
		{blackjack.ErrAlreadyBet, http.StatusConflict},
		{blackjack.ErrNotAllPlayersReady, http.StatusConflict},
		{blackjack.StageError{Op: "bet", Got: blackjack.StagePlayersTurn}, http.StatusConflict},
		{room.ErrShiftEnded, http.StatusServiceUnavailable},
		{blackjack.ErrDeckExhausted, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusCode(tt.err), tt.err.Error())
	}
}
