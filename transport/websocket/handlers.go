package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	game, err := that.gameUseCase.CreateGame(ctx, payloadReq.Mode)
	if err != nil {
		log.Error("failed to create game", "mode", payloadReq.Mode, "error", err)
		return that.replyError(conn, msg.Action, err)
	}

	log.Info("game created", "gameID", game.ID)

	return that.replyGame(conn, msg.Action, game)
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	game, err := that.gameUseCase.GetGame(ctx, payloadReq.ID)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.replyGame(conn, msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		log.Error("cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "row and col are required")
	}

	log = log.With("gameID", payloadReq.ID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.ID, *payloadReq.Row, *payloadReq.Col)
	if err != nil {
		log.Info("turn rejected", "error", err)
		return that.replyError(conn, msg.Action, err)
	}

	log.Info("player made a turn")

	return that.replyGame(conn, msg.Action, game)
}

func (that *Server) handleGameRestart(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	game, err := that.gameUseCase.RestartGame(ctx, payloadReq.ID)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.replyGame(conn, msg.Action, game)
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if err = that.gameUseCase.LeaveGame(ctx, payloadReq.ID); err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	log.Info("player left", "gameID", payloadReq.ID)

	return that.sendMessage(conn, msg.Action, Payload{ID: payloadReq.ID})
}

func (that *Server) replyGame(conn *websocket.Conn, action string, game *entity.Game) error {
	if err := that.sendMessage(conn, action, Payload{Game: entity.NewGameView(game)}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// replyError sends domain errors to the client as is and hides the rest.
func (that *Server) replyError(conn *websocket.Conn, action string, err error) error {
	if isClientError(err) {
		return that.sendErrorResponse(conn, action, err.Error())
	}

	that.logger.Error("request failed", "action", action, "error", err)

	return that.sendErrorResponse(conn, action, "internal error")
}

func isClientError(err error) bool {
	return errors.Is(err, repository.ErrGameNotFound) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrUnknownMode) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrNotYourTurn)
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
