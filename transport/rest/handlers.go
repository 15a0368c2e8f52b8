package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errInvalidBody = errors.New("invalid request body")

type turnRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type errorResponse struct {
	Error string           `json:"error"`
	Game  *entity.GameView `json:"game,omitempty"`
}

func (that *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req entity.NewGameRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	game, err := that.games.NewGame(r.Context(), &req)
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	if req.X == nil || req.Y == nil {
		that.writeError(w, r, apperror.ErrInvalidCell, nil)
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.X, *req.Y)
	if err != nil {
		that.writeError(w, r, err, game)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) restartGame(w http.ResponseWriter, r *http.Request) {
	var req entity.NewGameRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	game, err := that.games.RestartGame(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}

	return nil
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error, game *entity.GameView) {
	status := statusCode(err)

	log := that.logger.With("method", r.Method, "path", r.URL.Path)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "error", err, "status", status)
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Game: game})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidBody),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidSide),
		errors.Is(err, apperror.ErrInvalidPlayer):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrTooManyGames):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
