package mux

import (
	"errors"
	"net/http"
	"strconv"

	"blackjack-server/pkg/casino"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type statusResponse struct {
	Status string `json:"status"`
}

// dispatch runs the action for the caller and writes its reply
func (m *Mux) dispatch(w http.ResponseWriter, r *http.Request, statusCode int, msg *room.PayloadIn) {
	data, err := m.pitBoss.Dispatch(r.Context(), address(r), msg)
	if err != nil {
		writeGameError(w, err)
		return
	}

	if data == nil {
		writeJSON(w, statusCode, statusResponse{Status: "OK"})
		return
	}

	writeJSON(w, statusCode, data)
}

func roomID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.New("invalid room id")
	}

	return id, nil
}

func (m *Mux) getRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		data, err := m.pitBoss.Dispatch(r.Context(), "", &room.PayloadIn{Action: "getRooms"})
		if err != nil {
			writeGameError(w, err)
			return
		}

		rooms := data.([]casino.RoomInfo)
		if start > len(rooms) {
			start = len(rooms)
		}

		rooms = rooms[start:]
		if len(rooms) > rows {
			rooms = rooms[:rows]
		}

		writeJSON(w, http.StatusOK, rooms)
	}
}

type postRoomPayload struct {
	Name string `json:"name"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		m.dispatch(w, r, http.StatusCreated, &room.PayloadIn{
			Action:         "createRoom",
			AdditionalData: room.AdditionalData{"name": pp.Name},
		})
	}
}

// getRoomQuery answers a read-only query keyed by the room in the path
func (m *Mux) getRoomQuery(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := roomID(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		m.dispatch(w, r, http.StatusOK, &room.PayloadIn{
			Action:         action,
			AdditionalData: room.AdditionalData{"roomId": id},
		})
	}
}

func (m *Mux) getRoomPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := roomID(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		m.dispatch(w, r, http.StatusOK, &room.PayloadIn{
			Action: "getGameStatePlayer",
			AdditionalData: room.AdditionalData{
				"roomId":  id,
				"address": gmux.Vars(r)["address"],
			},
		})
	}
}

// postRoomAction runs a mutating action on the room in the path
// When withBody is set, the JSON body supplies the rest of the action's fields.
func (m *Mux) postRoomAction(action string, withBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := roomID(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		data := room.AdditionalData{}
		if withBody && !decodeRequest(w, r, &data) {
			return
		}

		if data == nil {
			data = room.AdditionalData{}
		}

		data["roomId"] = id
		m.dispatch(w, r, http.StatusOK, &room.PayloadIn{
			Action:         action,
			AdditionalData: data,
		})
	}
}

func (m *Mux) getBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.dispatch(w, r, http.StatusOK, &room.PayloadIn{
			Action:         "getBalance",
			AdditionalData: room.AdditionalData{"address": gmux.Vars(r)["address"]},
		})
	}
}

type postScorePayload struct {
	Cards []deck.Card `json:"cards"`
}

func (m *Mux) postScore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postScorePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		m.dispatch(w, r, http.StatusOK, &room.PayloadIn{
			Action: "calculateHandScore",
			Cards:  pp.Cards,
		})
	}
}
