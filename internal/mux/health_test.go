package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	m := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
	assert.Equal(t, 0, expects.Rooms)

	assertPost(t, ts, "/room", postRoomPayload{Name: "room"}, nil, 201, token(t, "dealer"))
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, 1, expects.Rooms)

	m.pitBoss.EndShift()

	var errObj errorResponse
	assertGet(t, ts, "/health", &errObj, 503)
	assert.Equal(t, "Service Unavailable", errObj.Message)
}
