package engine

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Status uint8

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusDraw
	StatusXWins
	StatusOWins
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusDraw:
		return "draw"
	case StatusXWins:
		return "x_wins"
	case StatusOWins:
		return "o_wins"
	default:
		return "not_started"
	}
}

// IsFinished reports whether the status is terminal.
func (s Status) IsFinished() bool {
	return s == StatusDraw || s == StatusXWins || s == StatusOWins
}

type Side uint8

const (
	SideX Side = iota
	SideO
)

func (s Side) Mark() Mark {
	if s == SideO {
		return O
	}
	return X
}

func (s Side) Opponent() Side {
	if s == SideO {
		return SideX
	}
	return SideO
}

func (s Side) String() string {
	return s.Mark().String()
}

type PlayerType uint8

const (
	Human PlayerType = iota
	Computer
)

func (p PlayerType) String() string {
	if p == Computer {
		return "computer"
	}
	return "human"
}

// StatusCallback is notified once at the end of every Start and HumanMove call.
type StatusCallback func(Status)

// Game drives a single-player match between a human and the computer.
// It is not safe for concurrent use, and the callback must not call back into the Game.
type Game struct {
	policy Policy
	board  *Board
	rnd    Rand

	humanSide     Side
	currentPlayer PlayerType
	callback      StatusCallback
	status        Status
	moves         int
}

type Option func(*Game)

// WithRand sets the random source used for the computer's opening move.
func WithRand(rnd Rand) Option {
	return func(game *Game) {
		game.rnd = rnd
	}
}

func NewGame(opts ...Option) *Game {
	game := &Game{
		policy:        NewPolicy(Hard),
		board:         NewBoard(),
		humanSide:     SideO,
		currentPlayer: Human,
		status:        StatusNotStarted,
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.rnd == nil {
		game.rnd = NewRand(0)
	}

	return game
}

// Start resets the board and begins a new game. When the computer goes first
// it plays its opening move before Start returns.
func (that *Game) Start(humanSide Side, firstPlayer PlayerType, callback StatusCallback, easyMode bool) {
	if humanSide > SideO {
		panic(fmt.Errorf("%w: %d", apperror.ErrInvalidSide, humanSide))
	}

	if firstPlayer > Computer {
		panic(fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, firstPlayer))
	}

	difficulty := Hard
	if easyMode {
		difficulty = Easy
	}

	that.policy = NewPolicy(difficulty)
	that.board = NewBoard()
	that.humanSide = humanSide
	that.currentPlayer = firstPlayer
	that.callback = callback
	that.status = StatusInProgress
	that.moves = 0

	if that.currentPlayer == Computer {
		that.computerMove()
	}

	that.notify()
}

// HumanMove places the human's mark at column x, row y and, if the game goes on,
// plays the computer's reply. It panics when called out of turn, on an occupied
// cell, off the board or outside a running game.
func (that *Game) HumanMove(x, y uint8) {
	switch {
	case that.status == StatusNotStarted:
		panic(apperror.ErrGameIsNotStarted)
	case that.status.IsFinished():
		panic(apperror.ErrGameFinished)
	case that.currentPlayer != Human:
		panic(apperror.ErrNotYourTurn)
	}

	cell := that.board.At(x, y)
	if !cell.IsEmpty() {
		panic(fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y))
	}

	that.markCell(cell)
	that.updateAttackPoints(x, y)
	that.updateDefensePoints(x, y)
	that.updateGame(cell)

	if that.status == StatusInProgress {
		that.computerMove()
	}

	that.notify()
}

// GetCell returns a snapshot of the cell at column x, row y.
// An AttackPoints value of WinningMark flags the winning line.
func (that *Game) GetCell(x, y uint8) Cell {
	return *that.board.At(x, y)
}

// Cells returns a snapshot of the whole board in row-major order.
func (that *Game) Cells() [BoardSize * BoardSize]Cell {
	return that.board.Cells()
}

func (that *Game) Status() Status {
	return that.status
}

func (that *Game) Moves() int {
	return that.moves
}

func (that *Game) CurrentPlayer() PlayerType {
	return that.currentPlayer
}

func (that *Game) HumanSide() Side {
	return that.humanSide
}

func (that *Game) Difficulty() Difficulty {
	return that.policy.Difficulty()
}

func (that *Game) computerMove() {
	if that.currentPlayer != Computer {
		panic(apperror.ErrNotYourTurn)
	}

	// no score carries any signal before the first move
	if that.moves == 0 {
		cell := randomCell(that.board, that.rnd)
		that.markCell(cell)
		that.updateGame(cell)
		return
	}

	cell := that.board.MaxScoreCell()
	that.markCell(cell)
	// another pass to see if this move opened a win opportunity
	that.updateAttackPoints(cell.X, cell.Y)
	that.updateGame(cell)
}

func (that *Game) markCell(cell *Cell) {
	if that.currentPlayer == Human {
		cell.Value = that.humanSide.Mark()
	} else {
		cell.Value = that.humanSide.Opponent().Mark()
	}

	cell.AttackPoints = 0
	cell.DefensePoints = 0
}

func (that *Game) updateAttackPoints(x, y uint8) {
	humanMark := that.humanSide.Mark()
	computerMark := that.humanSide.Opponent().Mark()

	for _, l := range that.board.linesThrough(x, y) {
		enemyCount := l.count(humanMark)
		friendlyCount := l.count(computerMark)

		l.forEach(func(cell *Cell) {
			that.policy.UpdateAttackLinePoints(enemyCount, friendlyCount, cell)
		}, false)
	}
}

func (that *Game) updateDefensePoints(x, y uint8) {
	humanMark := that.humanSide.Mark()

	for _, l := range that.board.linesThrough(x, y) {
		enemyCount := l.count(humanMark)

		l.forEach(func(cell *Cell) {
			that.policy.UpdateDefenseLinePoints(enemyCount, cell)
		}, false)
	}
}

// updateGame passes the turn, counts the move and evaluates the terminal conditions.
func (that *Game) updateGame(cell *Cell) {
	mover := that.humanSide
	if that.currentPlayer == Computer {
		mover = that.humanSide.Opponent()
	}

	if that.currentPlayer == Human {
		that.currentPlayer = Computer
	} else {
		that.currentPlayer = Human
	}

	that.moves++

	switch {
	case that.isWinningMove(cell):
		if mover == SideO {
			that.status = StatusOWins
		} else {
			that.status = StatusXWins
		}
	case that.moves == BoardSize*BoardSize:
		that.status = StatusDraw
	}
}

// isWinningMove checks the lines through cell and marks the first completed one.
func (that *Game) isWinningMove(cell *Cell) bool {
	if cell.IsEmpty() {
		panic(fmt.Errorf("%w: (%d, %d) is empty", apperror.ErrInvalidCell, cell.X, cell.Y))
	}

	for _, l := range that.board.linesThrough(cell.X, cell.Y) {
		if l.count(cell.Value) == BoardSize {
			l.forEach(func(c *Cell) { c.AttackPoints = WinningMark }, true)
			return true
		}
	}

	return false
}

func (that *Game) notify() {
	if that.callback != nil {
		that.callback(that.status)
	}
}
