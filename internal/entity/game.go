package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
)

const (
	SideX = "X"
	SideO = "O"

	FirstHuman    = "human"
	FirstComputer = "computer"
)

type CellView struct {
	X             uint8  `json:"x"`
	Y             uint8  `json:"y"`
	Mark          string `json:"mark"`
	AttackPoints  uint8  `json:"attack_points"`
	DefensePoints uint8  `json:"defense_points"`
	Winning       bool   `json:"winning,omitempty"`
}

type GameView struct {
	ID            string      `json:"id"`
	Board         [9]CellView `json:"board"`
	Status        string      `json:"status"`
	HumanSide     string      `json:"human_side"`
	CurrentPlayer string      `json:"current_player"`
	Moves         int         `json:"moves"`
	Difficulty    string      `json:"difficulty"`
}

// NewGameView snapshots the game for rendering. A winning cell reports zero
// attack points so the sentinel never leaks out as a score.
func NewGameView(id string, game *engine.Game) *GameView {
	view := &GameView{
		ID:            id,
		Status:        game.Status().String(),
		HumanSide:     game.HumanSide().String(),
		CurrentPlayer: game.CurrentPlayer().String(),
		Moves:         game.Moves(),
		Difficulty:    game.Difficulty().String(),
	}

	for i, cell := range game.Cells() {
		cellView := CellView{
			X:             cell.X,
			Y:             cell.Y,
			Mark:          cell.Value.String(),
			AttackPoints:  cell.AttackPoints,
			DefensePoints: cell.DefensePoints,
		}

		if cell.IsWinning() {
			cellView.Winning = true
			cellView.AttackPoints = 0
		}

		view.Board[i] = cellView
	}

	return view
}

func (that *GameView) IsFinished() bool {
	switch that.Status {
	case engine.StatusDraw.String(), engine.StatusXWins.String(), engine.StatusOWins.String():
		return true
	default:
		return false
	}
}

type NewGameRequest struct {
	HumanSide   string `json:"human_side"`
	FirstPlayer string `json:"first_player"`
	EasyMode    *bool  `json:"easy_mode,omitempty"`
}

// Side parses the requested human side; empty defaults to X.
func (that *NewGameRequest) Side() (engine.Side, error) {
	switch that.HumanSide {
	case SideX, "":
		return engine.SideX, nil
	case SideO:
		return engine.SideO, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidSide, that.HumanSide)
	}
}

// First parses who moves first; empty defaults to the human.
func (that *NewGameRequest) First() (engine.PlayerType, error) {
	switch that.FirstPlayer {
	case FirstHuman, "":
		return engine.Human, nil
	case FirstComputer:
		return engine.Computer, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, that.FirstPlayer)
	}
}

func (that *NewGameRequest) Validate() error {
	if _, err := that.Side(); err != nil {
		return err
	}

	if _, err := that.First(); err != nil {
		return err
	}

	return nil
}
