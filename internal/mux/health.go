package mux

import (
	"context"
	"net/http"
	"time"

	"blackjack-server/pkg/casino"
)

const healthTimeout = time.Second * 2

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Rooms   int    `json:"rooms"`
}

// getHealth reports OK only while the pit boss run loop answers
func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var rooms int
		err := m.pitBoss.Exec(ctx, func(c *casino.Casino) error {
			rooms = len(c.Rooms())
			return nil
		})
		if err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, err)
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Version: m.version,
			Rooms:   rooms,
		})
	}
}
