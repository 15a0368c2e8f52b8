package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell coordinates")
	ErrBoardFull        = errors.New("no empty cell left on the board")
	ErrGameNotFound     = errors.New("game not found")
	ErrTooManyGames     = errors.New("too many active games")
	ErrInvalidSide      = errors.New("invalid player side")
	ErrInvalidPlayer    = errors.New("invalid first player")
)
