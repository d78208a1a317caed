package blackjack

// EventType names a state change notification
type EventType string

// event types
const (
	EventRoomCreated                    EventType = "RoomCreated"
	EventPlayerJoined                   EventType = "PlayerJoined"
	EventPlayerLeft                     EventType = "PlayerLeft"
	EventPlayerBetted                   EventType = "PlayerBetted"
	EventPlayerReadyForNextRoundChanged EventType = "PlayerReadyForNextRoundChanged"
	EventGameStageChanged               EventType = "GameStageChanged"
	EventCurrentPlayerIndexChanged      EventType = "CurrentPlayerIndexChanged"
	EventPlayerDecisionReceived         EventType = "PlayerDecisionReceived"
	EventGameRoundResultsAnnounced      EventType = "GameRoundResultsAnnounced"
)

// Event is an outbound notification
// Nonce is the per-room sequence number. Global events (RoomCreated) are not sequenced.
type Event struct {
	Type   EventType   `json:"type"`
	RoomID int64       `json:"roomId"`
	Nonce  int64       `json:"nonce"`
	Global bool        `json:"global,omitempty"`
	Data   interface{} `json:"data"`
}

// RoomCreatedData is the payload of RoomCreated
type RoomCreatedData struct {
	Creator string `json:"creator"`
	Name    string `json:"name"`
}

// PlayerData is the payload of PlayerJoined and PlayerLeft
type PlayerData struct {
	Address string `json:"address"`
}

// BetData is the payload of PlayerBetted
type BetData struct {
	Address string `json:"address"`
	Bet     int64  `json:"bet"`
}

// ReadyData is the payload of PlayerReadyForNextRoundChanged
type ReadyData struct {
	Address string `json:"address"`
	Ready   bool   `json:"ready"`
}

// StageData is the payload of GameStageChanged
type StageData struct {
	Stage Stage `json:"stage"`
}

// CurrentPlayerData is the payload of CurrentPlayerIndexChanged
// Index is -1 (and Address empty) when no player is left to act.
type CurrentPlayerData struct {
	Index   int    `json:"index"`
	Address string `json:"address"`
}

// DecisionData is the payload of PlayerDecisionReceived
type DecisionData struct {
	Address  string   `json:"address"`
	Decision Decision `json:"decision"`
}

// RoundResults is the payload of GameRoundResultsAnnounced
// Outcomes are net balance changes for the round, in player order.
type RoundResults struct {
	Round         int64    `json:"round"`
	Dealer        string   `json:"dealer"`
	DealerOutcome int64    `json:"dealerOutcome"`
	Players       []string `json:"players"`
	Outcomes      []int64  `json:"outcomes"`
}

func (g *Game) emit(t EventType, data interface{}) {
	g.outbox = append(g.outbox, Event{
		Type:   t,
		RoomID: g.id,
		Nonce:  g.nonce,
		Data:   data,
	})
	g.nonce++
}

// Drain returns the pending notifications and clears them
func (g *Game) Drain() []Event {
	events := g.outbox
	g.outbox = nil

	return events
}

// EventNonce returns the nonce the next notification will carry
func (g *Game) EventNonce() int64 {
	return g.nonce
}
