package engine

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// BoardSize is the number of cells on each side of the board.
const BoardSize = 3

// WinningMark is the attack points value of a cell that belongs to the line
// which just won the game. It is display state, not a score.
const WinningMark = math.MaxUint8

type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Cell is a single board position with its occupancy and heuristic scores.
type Cell struct {
	X             uint8
	Y             uint8
	Value         Mark
	AttackPoints  uint8
	DefensePoints uint8
}

func (that Cell) IsEmpty() bool {
	return that.Value == Empty
}

// IsWinning reports whether the cell was marked as part of the winning line.
func (that Cell) IsWinning() bool {
	return that.AttackPoints == WinningMark
}

func (that Cell) score() int {
	return int(that.AttackPoints) + int(that.DefensePoints)
}

// Board is the 3x3 grid, stored row-major.
type Board struct {
	cells [BoardSize * BoardSize]Cell
}

// attack seeds by position: corners lie on 3 lines, edges on 2, the center on 4.
var initialAttackPoints = [BoardSize][BoardSize]uint8{
	{3, 2, 3},
	{2, 4, 2},
	{3, 2, 3},
}

func NewBoard() *Board {
	board := &Board{}

	for y := uint8(0); y < BoardSize; y++ {
		for x := uint8(0); x < BoardSize; x++ {
			cell := board.At(x, y)
			cell.X = x
			cell.Y = y
			cell.AttackPoints = initialAttackPoints[y][x]
		}
	}

	return board
}

// At returns the cell at column x, row y. It panics when the coordinates are off the board.
func (that *Board) At(x, y uint8) *Cell {
	if x >= BoardSize || y >= BoardSize {
		panic(fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, x, y))
	}

	return &that.cells[int(y)*BoardSize+int(x)]
}

// MaxScoreCell returns the empty cell with the highest attack plus defense score.
// Ties go to the first such cell in row-major order. It panics on a full board.
func (that *Board) MaxScoreCell() *Cell {
	var best *Cell

	for i := range that.cells {
		cell := &that.cells[i]
		if !cell.IsEmpty() {
			continue
		}

		if best == nil || cell.score() > best.score() {
			best = cell
		}
	}

	if best == nil {
		panic(apperror.ErrBoardFull)
	}

	return best
}

// Cells returns a copy of all cells in row-major order.
func (that *Board) Cells() [BoardSize * BoardSize]Cell {
	return that.cells
}

// ForEachColumn calls fn for the cells of column x in increasing row order.
// Occupied cells are skipped unless includeOccupied is set.
func (that *Board) ForEachColumn(x uint8, fn func(*Cell), includeOccupied bool) {
	that.forEach(func(i uint8) (uint8, uint8) { return x, i }, fn, includeOccupied)
}

// ForEachRow calls fn for the cells of row y in increasing column order.
func (that *Board) ForEachRow(y uint8, fn func(*Cell), includeOccupied bool) {
	that.forEach(func(i uint8) (uint8, uint8) { return i, y }, fn, includeOccupied)
}

// ForEachDiagonal1 walks the cells where x == y.
func (that *Board) ForEachDiagonal1(fn func(*Cell), includeOccupied bool) {
	that.forEach(func(i uint8) (uint8, uint8) { return i, i }, fn, includeOccupied)
}

// ForEachDiagonal2 walks the cells where x + y == BoardSize - 1.
func (that *Board) ForEachDiagonal2(fn func(*Cell), includeOccupied bool) {
	that.forEach(func(i uint8) (uint8, uint8) { return i, BoardSize - 1 - i }, fn, includeOccupied)
}

func (that *Board) CountColumn(x uint8, value Mark) uint8 {
	return that.count(func(i uint8) (uint8, uint8) { return x, i }, value)
}

func (that *Board) CountRow(y uint8, value Mark) uint8 {
	return that.count(func(i uint8) (uint8, uint8) { return i, y }, value)
}

func (that *Board) CountDiagonal1(value Mark) uint8 {
	return that.count(func(i uint8) (uint8, uint8) { return i, i }, value)
}

func (that *Board) CountDiagonal2(value Mark) uint8 {
	return that.count(func(i uint8) (uint8, uint8) { return i, BoardSize - 1 - i }, value)
}

// coordFunc maps a position along a line to board coordinates.
type coordFunc func(i uint8) (x, y uint8)

func (that *Board) forEach(coord coordFunc, fn func(*Cell), includeOccupied bool) {
	for i := uint8(0); i < BoardSize; i++ {
		cell := that.At(coord(i))
		if includeOccupied || cell.IsEmpty() {
			fn(cell)
		}
	}
}

func (that *Board) count(coord coordFunc, value Mark) uint8 {
	var sum uint8
	for i := uint8(0); i < BoardSize; i++ {
		if that.At(coord(i)).Value == value {
			sum++
		}
	}

	return sum
}

// line is one row, column or diagonal of the board.
type line struct {
	forEach func(fn func(*Cell), includeOccupied bool)
	count   func(value Mark) uint8
}

// linesThrough returns the lines through (x, y) in the order column, row,
// diagonal 1, diagonal 2. Diagonals are included only if the cell lies on them.
func (that *Board) linesThrough(x, y uint8) []line {
	lines := []line{
		{
			forEach: func(fn func(*Cell), all bool) { that.ForEachColumn(x, fn, all) },
			count:   func(value Mark) uint8 { return that.CountColumn(x, value) },
		},
		{
			forEach: func(fn func(*Cell), all bool) { that.ForEachRow(y, fn, all) },
			count:   func(value Mark) uint8 { return that.CountRow(y, value) },
		},
	}

	if x == y {
		lines = append(lines, line{forEach: that.ForEachDiagonal1, count: that.CountDiagonal1})
	}

	if x+y == BoardSize-1 {
		lines = append(lines, line{forEach: that.ForEachDiagonal2, count: that.CountDiagonal2})
	}

	return lines
}
