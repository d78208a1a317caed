package mux

import (
	"context"
	"net/http"
	"strings"

	"blackjack-server/internal/jwt"
	"blackjack-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxAddressKey ctxKey = iota
)

// addressHeader echoes the authenticated caller back to the client
const addressHeader = "Blackjack-Address"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
// The pit boss must already be on shift.
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/score").Handler(this.postScore())
		r.Methods(http.MethodGet).Path("/balance/{address}").Handler(this.getBalance())

		r.Methods(http.MethodGet).Path("/room").Handler(this.getRooms())
		r.Methods(http.MethodGet).Path("/room/{id:[0-9]+}").Handler(this.getRoomQuery("getRoom"))
		r.Methods(http.MethodGet).Path("/room/{id:[0-9]+}/players").Handler(this.getRoomQuery("getRoomPlayers"))
		r.Methods(http.MethodGet).Path("/room/{id:[0-9]+}/state").Handler(this.getRoomQuery("getGameState"))
		r.Methods(http.MethodGet).Path("/room/{id:[0-9]+}/nonce").Handler(this.getRoomQuery("getEventNonce"))
		r.Methods(http.MethodGet).Path("/room/{id:[0-9]+}/player/{address}").Handler(this.getRoomPlayer())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())
		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

		rr := r.PathPrefix("/room/{id:[0-9]+}").Subrouter()
		rr.Methods(http.MethodPost).Path("/join").Handler(this.postRoomAction("joinRoom", false))
		rr.Methods(http.MethodPost).Path("/leave").Handler(this.postRoomAction("leaveRoom", false))
		rr.Methods(http.MethodPost).Path("/bet").Handler(this.postRoomAction("placeBet", true))
		rr.Methods(http.MethodPost).Path("/start").Handler(this.postRoomAction("startGame", false))
		rr.Methods(http.MethodPost).Path("/decision").Handler(this.postRoomAction("playerDecision", true))
		rr.Methods(http.MethodPost).Path("/ready").Handler(this.postRoomAction("setPlayerReadyForNextRound", true))
		rr.Methods(http.MethodPost).Path("/next-round").Handler(this.postRoomAction("nextRound", false))
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		address, err := jwt.ValidAddress(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxAddressKey, address)
		w.Header().Set(addressHeader, address)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// address returns the authenticated caller, or an empty string on an unauthorized route
func address(r *http.Request) string {
	s, _ := r.Context().Value(ctxAddressKey).(string)
	return s
}
