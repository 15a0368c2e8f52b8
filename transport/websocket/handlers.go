package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, conn *connection, payload *Payload) (*entity.GameView, error) {
	req := payload.NewGame
	if req == nil {
		req = &entity.NewGameRequest{}
	}

	game, err := that.games.NewGame(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	conn.games[game.ID] = struct{}{}

	that.logger.Info("game created over websocket", "gameID", game.ID)

	return game, nil
}

func (that *Server) handleGameTurn(ctx context.Context, _ *connection, payload *Payload) (*entity.GameView, error) {
	if payload.GameID == "" {
		return nil, errMissingGameID
	}

	if payload.X == nil || payload.Y == nil {
		return nil, apperror.ErrInvalidCell
	}

	game, err := that.games.MakeTurn(ctx, payload.GameID, *payload.X, *payload.Y)
	if err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, nil
}

func (that *Server) handleGetGame(ctx context.Context, _ *connection, payload *Payload) (*entity.GameView, error) {
	if payload.GameID == "" {
		return nil, errMissingGameID
	}

	return that.games.GetGame(ctx, payload.GameID)
}

func (that *Server) handleRestartGame(ctx context.Context, _ *connection, payload *Payload) (*entity.GameView, error) {
	if payload.GameID == "" {
		return nil, errMissingGameID
	}

	req := payload.NewGame
	if req == nil {
		req = &entity.NewGameRequest{}
	}

	game, err := that.games.RestartGame(ctx, payload.GameID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	return game, nil
}
