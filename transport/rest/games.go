package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

var errMissingCell = errors.New("row and col are required")

type gameUseCase interface {
	CreateGame(ctx context.Context, mode string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error)
	RestartGame(ctx context.Context, id string) (*entity.Game, error)
	LeaveGame(ctx context.Context, id string) error
}

type GameHandler interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	RestartGame(w http.ResponseWriter, r *http.Request)
	LeaveGame(w http.ResponseWriter, r *http.Request)
}

type gameHandler struct {
	logger *slog.Logger
	game   gameUseCase
}

type createGameRequest struct {
	Mode string `json:"mode"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewGameHandler(logger *slog.Logger, game gameUseCase) GameHandler {
	return &gameHandler{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

func (that *gameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.game.CreateGame(r.Context(), req.Mode)
	if err != nil {
		that.handleError(w, "CreateGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, entity.NewGameView(game))
}

func (that *gameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.game.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.handleError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, entity.NewGameView(game))
}

func (that *gameHandler) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, http.StatusBadRequest, errMissingCell.Error())
		return
	}

	game, err := that.game.MakeTurn(r.Context(), mux.Vars(r)["id"], *req.Row, *req.Col)
	if err != nil {
		that.handleError(w, "MakeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, entity.NewGameView(game))
}

func (that *gameHandler) RestartGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.game.RestartGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.handleError(w, "RestartGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, entity.NewGameView(game))
}

func (that *gameHandler) LeaveGame(w http.ResponseWriter, r *http.Request) {
	if err := that.game.LeaveGame(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.handleError(w, "LeaveGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleError maps domain errors to HTTP statuses. Anything unknown is logged
// and hidden behind a 500.
func (that *gameHandler) handleError(w http.ResponseWriter, method string, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeError(w, status, "Internal Server Error")
		return
	}

	that.writeError(w, status, err.Error())
}

func StatusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *gameHandler) writeError(w http.ResponseWriter, status int, msg string) {
	that.writeJSON(w, status, errorResponse{Error: msg})
}

func (that *gameHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
