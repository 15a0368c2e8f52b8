package websocket

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionNewGame = "game:new"
	actionTurn    = "game:turn"
	actionGet     = "game:get"
	actionRestart = "game:restart"
	actionError   = "error"
)

var (
	errUnknownAction  = errors.New("unknown action")
	errInvalidPayload = errors.New("invalid payload")
	errMissingGameID  = errors.New("game_id is required")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and replies; each action reads the fields it needs.
type Payload struct {
	GameID  string                 `json:"game_id,omitempty"`
	NewGame *entity.NewGameRequest `json:"new_game,omitempty"`
	X       *int                   `json:"x,omitempty"`
	Y       *int                   `json:"y,omitempty"`

	Game  *entity.GameView `json:"game,omitempty"`
	Error string           `json:"error,omitempty"`
}

func newReply(action string, game *entity.GameView, err error) (*Message, error) {
	payload := Payload{Game: game}
	if err != nil {
		payload.Error = err.Error()
	}

	raw, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return nil, marshalErr
	}

	return &Message{Action: action, Payload: raw}, nil
}
