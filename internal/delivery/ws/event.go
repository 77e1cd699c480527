package ws

import "encoding/json"

// Event types pushed to clients.
const (
	EventMessageReceived = "message:received"
	EventMatchNew        = "match:new"
	EventMatchStatus     = "match:status"
	EventTyping          = "typing:user"
)

// Client-originated frame types.
const (
	frameTyping = "typing"
)

// Event is the wire frame for everything pushed over the socket.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}

// inboundFrame is what clients are allowed to send.
type inboundFrame struct {
	Type    string `json:"type"`
	Payload struct {
		MatchID int `json:"match_id"`
	} `json:"payload"`
}
