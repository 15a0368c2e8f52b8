package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
)

var (
	ErrInputClosed = errors.New("input closed before the game finished")

	errMoveFormat = errors.New("expected two numbers: x y")
)

// Player runs one game against the computer, reading moves line by line.
type Player struct {
	logger   *slog.Logger
	renderer *Renderer
	input    *bufio.Scanner
}

func NewPlayer(logger *slog.Logger, renderer *Renderer, in io.Reader) *Player {
	return &Player{
		logger:   logger.With("component", "console"),
		renderer: renderer,
		input:    bufio.NewScanner(in),
	}
}

// Play - starts the game and asks for moves until it is finished.
func (that *Player) Play(ctx context.Context, game *engine.Game, humanSide engine.Side, first engine.PlayerType, easyMode bool) (engine.Status, error) {
	log := that.logger.With("method", "Play")

	game.Start(humanSide, first, func(status engine.Status) {
		log.Debug("status changed", "status", status, "moves", game.Moves())

		that.renderer.Board(game.Cells())
		that.renderer.Status(status, humanSide)
	}, easyMode)

	for !game.Status().IsFinished() {
		if err := ctx.Err(); err != nil {
			return game.Status(), err
		}

		that.renderer.Prompt(humanSide)

		if !that.input.Scan() {
			if err := that.input.Err(); err != nil {
				return game.Status(), fmt.Errorf("failed to read move: %w", err)
			}

			return game.Status(), ErrInputClosed
		}

		x, y, err := parseMove(that.input.Text())
		if err == nil {
			err = checkMove(game, x, y)
		}

		if err != nil {
			that.renderer.Message("invalid move: %v", err)
			continue
		}

		game.HumanMove(x, y)
	}

	return game.Status(), nil
}

func parseMove(line string) (uint8, uint8, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errMoveFormat
	}

	x, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil {
		return 0, 0, errMoveFormat
	}

	y, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return 0, 0, errMoveFormat
	}

	return uint8(x), uint8(y), nil
}

func checkMove(game *engine.Game, x, y uint8) error {
	if x >= engine.BoardSize || y >= engine.BoardSize {
		return apperror.ErrInvalidCell
	}

	if !game.GetCell(x, y).IsEmpty() {
		return apperror.ErrCellOccupied
	}

	return nil
}
