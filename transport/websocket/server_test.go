package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/board"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bot := service.NewBotService(logger, minimax.Searcher{Pruning: true})
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), bot)

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(New(logger, manager).Handler(ctx))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Close()
		cancel()
	})

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload Payload) (string, Payload) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))

	return receive(t, conn)
}

func receive(t *testing.T, conn *websocket.Conn) (string, Payload) {
	t.Helper()

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var resp Payload
	require.NoError(t, json.Unmarshal(msg.Payload, &resp))

	return msg.Action, resp
}

func cell(row, col int) (*int, *int) {
	return &row, &col
}

func TestServer_ComputerGame(t *testing.T) {
	conn := dial(t)

	// Given: a new computer game
	action, resp := send(t, conn, actionGameNew, Payload{Mode: entity.ModeComputer})
	require.Equal(t, actionGameNew, action)
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.Game)
	id := resp.Game.ID

	// When: X opens in a corner
	row, col := cell(0, 0)
	action, resp = send(t, conn, actionGameTurn, Payload{ID: id, Row: row, Col: col})

	// Then: the reply already contains the computer's center move
	assert.Equal(t, actionGameTurn, action)
	require.Empty(t, resp.Error)
	assert.Equal(t, board.PlayerX, resp.Game.Board[0][0])
	assert.Equal(t, board.PlayerO, resp.Game.Board[1][1])

	// And: game:get returns the same board
	_, got := send(t, conn, actionGameGet, Payload{ID: id})
	require.NotNil(t, got.Game)
	assert.Equal(t, resp.Game.Board, got.Game.Board)
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	t.Run("Unknown action", func(t *testing.T) {
		action, resp := send(t, conn, "game:join", Payload{})

		assert.Equal(t, "game:join", action)
		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		_, resp := send(t, conn, actionGameNew, Payload{Mode: "online"})

		assert.Contains(t, resp.Error, "unknown game mode")
		assert.Nil(t, resp.Game)
	})

	t.Run("Turn without cell", func(t *testing.T) {
		_, resp := send(t, conn, actionGameTurn, Payload{ID: "x"})

		assert.Equal(t, "row and col are required", resp.Error)
	})

	t.Run("Occupied cell", func(t *testing.T) {
		_, resp := send(t, conn, actionGameNew, Payload{Mode: entity.ModePlayers})
		id := resp.Game.ID

		row, col := cell(2, 2)
		_, resp = send(t, conn, actionGameTurn, Payload{ID: id, Row: row, Col: col})
		require.Empty(t, resp.Error)

		_, resp = send(t, conn, actionGameTurn, Payload{ID: id, Row: row, Col: col})
		assert.Contains(t, resp.Error, "cell is already occupied")
	})

	t.Run("Connection survives a broken message", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))

		_, resp := receive(t, conn)
		assert.Equal(t, "invalid message", resp.Error)

		_, resp = send(t, conn, actionGameNew, Payload{Mode: entity.ModePlayers})
		assert.NotNil(t, resp.Game)
	})
}

func TestServer_RestartAndLeave(t *testing.T) {
	conn := dial(t)

	_, resp := send(t, conn, actionGameNew, Payload{Mode: entity.ModePlayers})
	id := resp.Game.ID

	row, col := cell(1, 2)
	_, resp = send(t, conn, actionGameTurn, Payload{ID: id, Row: row, Col: col})
	require.Empty(t, resp.Error)

	// When: the game is restarted
	_, resp = send(t, conn, actionGameRestart, Payload{ID: id})

	// Then: the board is empty
	require.NotNil(t, resp.Game)
	assert.Equal(t, board.Board{}, resp.Game.Board)

	// When: the player leaves
	action, resp := send(t, conn, actionGameLeave, Payload{ID: id})
	assert.Equal(t, actionGameLeave, action)
	assert.Equal(t, id, resp.ID)
	assert.Empty(t, resp.Error)

	// Then: the game is gone
	_, resp = send(t, conn, actionGameGet, Payload{ID: id})
	assert.Contains(t, resp.Error, repository.ErrGameNotFound.Error())
}
