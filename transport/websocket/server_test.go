package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

func newTestSocket(t *testing.T) (*websocket.Conn, *usecase.GameManager) {
	t.Helper()

	ctx, st := suite.New(t)

	server := httptest.NewServer(New(st.Logger, st.Games).Handler(ctx))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn, st.Games
}

func send(t *testing.T, conn *websocket.Conn, action string, payload Payload) (string, Payload) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))

	var replyPayload Payload
	require.NoError(t, json.Unmarshal(reply.Payload, &replyPayload))

	return reply.Action, replyPayload
}

func intPtr(v int) *int {
	return &v
}

func TestServer_GameFlow(t *testing.T) {
	conn, _ := newTestSocket(t)

	// When: a new game is requested
	action, reply := send(t, conn, actionNewGame, Payload{})

	// Then: the running game is returned
	require.Equal(t, actionNewGame, action)
	require.Empty(t, reply.Error)
	require.NotNil(t, reply.Game)
	gameID := reply.Game.ID
	assert.Equal(t, "in_progress", reply.Game.Status)

	// When: the human takes the center
	action, reply = send(t, conn, actionTurn, Payload{GameID: gameID, X: intPtr(1), Y: intPtr(1)})

	// Then: the reply carries the board after the computer's answer
	require.Equal(t, actionTurn, action)
	require.Empty(t, reply.Error)
	assert.Equal(t, 2, reply.Game.Moves)
	assert.Equal(t, entity.SideO, reply.Game.Board[0].Mark)

	// When: the game is fetched
	_, reply = send(t, conn, actionGet, Payload{GameID: gameID})

	// Then: it matches the last reply
	require.Empty(t, reply.Error)
	assert.Equal(t, 2, reply.Game.Moves)

	// When: the game is restarted with the computer first
	_, reply = send(t, conn, actionRestart, Payload{
		GameID:  gameID,
		NewGame: &entity.NewGameRequest{HumanSide: entity.SideO, FirstPlayer: entity.FirstComputer},
	})

	// Then: the computer has already opened
	require.Empty(t, reply.Error)
	assert.Equal(t, gameID, reply.Game.ID)
	assert.Equal(t, 1, reply.Game.Moves)
	assert.Equal(t, entity.SideO, reply.Game.HumanSide)
}

func TestServer_Errors(t *testing.T) {
	conn, _ := newTestSocket(t)

	_, reply := send(t, conn, actionNewGame, Payload{})
	gameID := reply.Game.ID
	_, reply = send(t, conn, actionTurn, Payload{GameID: gameID, X: intPtr(1), Y: intPtr(1)})
	require.Empty(t, reply.Error)

	t.Run("Occupied cell returns the unchanged game", func(t *testing.T) {
		_, reply := send(t, conn, actionTurn, Payload{GameID: gameID, X: intPtr(1), Y: intPtr(1)})

		assert.Contains(t, reply.Error, apperror.ErrCellOccupied.Error())
		require.NotNil(t, reply.Game)
		assert.Equal(t, 2, reply.Game.Moves)
	})

	t.Run("Missing coordinates", func(t *testing.T) {
		_, reply := send(t, conn, actionTurn, Payload{GameID: gameID, X: intPtr(1)})

		assert.Equal(t, apperror.ErrInvalidCell.Error(), reply.Error)
	})

	t.Run("Missing game id", func(t *testing.T) {
		_, reply := send(t, conn, actionGet, Payload{})

		assert.Equal(t, errMissingGameID.Error(), reply.Error)
	})

	t.Run("Unknown game", func(t *testing.T) {
		_, reply := send(t, conn, actionGet, Payload{GameID: "missing"})

		assert.Contains(t, reply.Error, apperror.ErrGameNotFound.Error())
		assert.Nil(t, reply.Game)
	})

	t.Run("Unknown action", func(t *testing.T) {
		action, reply := send(t, conn, "game:undo", Payload{})

		assert.Equal(t, actionError, action)
		assert.Contains(t, reply.Error, errUnknownAction.Error())
	})

	t.Run("Malformed payload", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Action: actionTurn, Payload: json.RawMessage(`"oops"`)}))

		var reply Message
		require.NoError(t, conn.ReadJSON(&reply))

		var payload Payload
		require.NoError(t, json.Unmarshal(reply.Payload, &payload))
		assert.Equal(t, errInvalidPayload.Error(), payload.Error)
	})
}

func TestServer_DropsGamesOnDisconnect(t *testing.T) {
	// Given: a connection that created a game
	conn, manager := newTestSocket(t)
	_, reply := send(t, conn, actionNewGame, Payload{})
	require.Empty(t, reply.Error)
	require.Equal(t, 1, manager.ActiveGames())

	// When: the client closes the connection
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, msg))
	_ = conn.Close()

	// Then: the game is removed
	assert.Eventually(t, func() bool {
		return manager.ActiveGames() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
