package engine

import (
	"math/rand"
	"time"
)

// Rand is the random source used for the computer's opening move.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a Rand seeded with seed, or with the current time when seed is 0.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
}

// randomCell picks a cell uniformly at random. It is only used for the opening
// move, when every cell is free.
func randomCell(board *Board, rnd Rand) *Cell {
	x := uint8(rnd.Intn(BoardSize))
	y := uint8(rnd.Intn(BoardSize))

	return board.At(x, y)
}
