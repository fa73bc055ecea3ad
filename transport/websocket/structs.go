package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe/internal/presenter"
)

const (
	actionStart   = "session:start"
	actionGet     = "session:get"
	actionMove    = "session:move"
	actionRestart = "session:restart"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type StartPayload struct {
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
}

type SessionPayload struct {
	SessionID string `json:"session_id"`
}

type MovePayload struct {
	SessionID string `json:"session_id"`
	Row       *int   `json:"row"`
	Col       *int   `json:"col"`
}

type ResponsePayload struct {
	Session *presenter.View `json:"session,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}
