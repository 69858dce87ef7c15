package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/memorize-backend/internal/entity"
)

const (
	ActionNew     = "game:new"
	ActionChoose  = "game:choose"
	ActionShuffle = "game:shuffle"
	ActionRestart = "game:restart"
	ActionState   = "game:state"
	ActionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request is the payload sent by the client.
type Request struct {
	Theme  string `json:"theme,omitempty"`
	CardID *int   `json:"card_id,omitempty"`
}

// Response is the payload sent back: a snapshot or an error.
type Response struct {
	Game  *entity.Snapshot[string] `json:"game,omitempty"`
	Error string                   `json:"error,omitempty"`
}
