package mux

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/room"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsResponse struct {
	Key     string                 `json:"key"`
	Value   string                 `json:"value"`
	Data    map[string]interface{} `json:"data"`
	Context string                 `json:"context"`
}

func dialWS(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws?"+query, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsResponse {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var res wsResponse
	require.NoError(t, conn.ReadJSON(&res))
	return res
}

func TestMux_getWS(t *testing.T) {
	a := assert.New(t)
	ts := httptest.NewServer(newTestMux(t))
	defer ts.Close()

	dealer := dialWS(t, ts, "access_token="+url.QueryEscape(token(t, "dealer")))

	require.NoError(t, dealer.WriteJSON(room.PayloadIn{
		Action:         "createRoom",
		AdditionalData: room.AdditionalData{"name": "room"},
		Context:        "1",
	}))

	res := readWS(t, dealer)
	a.Equal("event", res.Key)
	a.Equal(string(blackjack.EventRoomCreated), res.Value)

	res = readWS(t, dealer)
	a.Equal("status", res.Key)
	a.Equal("1", res.Context)
	a.Equal(float64(1), res.Data["roomId"])

	// a follower of room 1 only
	player := dialWS(t, ts, "room=1&access_token="+url.QueryEscape(token(t, "player")))
	require.NoError(t, player.WriteJSON(room.PayloadIn{
		Action:         "joinRoom",
		AdditionalData: room.AdditionalData{"roomId": 1},
		Context:        "2",
	}))

	res = readWS(t, player)
	a.Equal("event", res.Key)
	a.Equal(string(blackjack.EventPlayerJoined), res.Value)
	a.Equal(float64(0), res.Data["nonce"])

	res = readWS(t, player)
	a.Equal("status", res.Key)
	a.Equal("2", res.Context)

	require.NoError(t, player.WriteJSON(room.PayloadIn{Action: "shuffle", Context: "3"}))
	res = readWS(t, player)
	a.Equal("error", res.Key)
	a.Equal("invalid payload: roomId must be an integer", res.Value)
	a.Equal("3", res.Context)
}

func TestMux_getWS_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t))
	defer ts.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, 401, resp.StatusCode)
	}
}
