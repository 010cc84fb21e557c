package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionGameNew     = "game:new"
	actionGameGet     = "game:get"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"
	actionGameLeave   = "game:leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and replies. Requests fill the game fields,
// replies carry Game or Error.
type Payload struct {
	ID   string `json:"id,omitempty"`
	Mode string `json:"mode,omitempty"`
	Row  *int   `json:"row,omitempty"`
	Col  *int   `json:"col,omitempty"`

	Game  *entity.GameView `json:"game,omitempty"`
	Error string           `json:"error,omitempty"`
}
