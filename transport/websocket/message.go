package websocket

import (
	"encoding/json"

	"github.com/nimplay/nim-backend/internal/entity"
)

const (
	ActionStart   = "session:start"
	ActionMove    = "session:move"
	ActionRestart = "session:restart"
	ActionResume  = "session:resume"

	ActionState    = "session:state"
	ActionTerminal = "session:terminal"
	ActionError    = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	PileIndex   int `json:"pile_index"`
	RemoveCount int `json:"remove_count"`
}

type ResumePayload struct {
	SessionID string `json:"session_id"`
}

type StatePayload struct {
	Game *entity.Game `json:"game"`
}

type TerminalPayload struct {
	Winner string       `json:"winner"`
	Game   *entity.Game `json:"game"`
}

type ErrorPayload struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}
