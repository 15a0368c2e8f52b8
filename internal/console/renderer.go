package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
)

const emptyCell = "."

// Renderer draws the board and game messages on a terminal.
type Renderer struct {
	out *termenv.Output

	xColor termenv.Color
	oColor termenv.Color
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	out := termenv.NewOutput(w, opts...)

	return &Renderer{
		out:    out,
		xColor: out.Color("1"),
		oColor: out.Color("4"),
	}
}

// Board - draws the grid with column numbers on top and row numbers on the left.
func (that *Renderer) Board(cells [engine.BoardSize * engine.BoardSize]engine.Cell) {
	var b strings.Builder

	b.WriteString(" ")
	for x := 0; x < engine.BoardSize; x++ {
		fmt.Fprintf(&b, " %d", x)
	}
	b.WriteString("\n")

	for y := 0; y < engine.BoardSize; y++ {
		fmt.Fprintf(&b, "%d", y)
		for x := 0; x < engine.BoardSize; x++ {
			b.WriteString(" ")
			b.WriteString(that.cell(cells[y*engine.BoardSize+x]))
		}
		b.WriteString("\n")
	}

	fmt.Fprint(that.out, b.String())
}

// Status - prints the outcome from the human's point of view.
func (that *Renderer) Status(status engine.Status, humanSide engine.Side) {
	var text string

	switch status {
	case engine.StatusXWins, engine.StatusOWins:
		if winner(status) == humanSide {
			text = "You win!"
		} else {
			text = "Computer wins."
		}
	case engine.StatusDraw:
		text = "Draw."
	case engine.StatusInProgress:
		return
	default:
		text = "Game not started."
	}

	fmt.Fprintln(that.out, that.out.String(text).Bold())
}

func (that *Renderer) Prompt(humanSide engine.Side) {
	fmt.Fprintf(that.out, "Your move as %s (x y): ", humanSide)
}

func (that *Renderer) Message(format string, args ...any) {
	fmt.Fprintln(that.out, that.out.String(fmt.Sprintf(format, args...)).Faint())
}

func (that *Renderer) cell(cell engine.Cell) string {
	if cell.IsEmpty() {
		return emptyCell
	}

	style := that.out.String(cell.Value.String())
	if cell.Value == engine.X {
		style = style.Foreground(that.xColor)
	} else {
		style = style.Foreground(that.oColor)
	}

	if cell.IsWinning() {
		style = style.Bold().Underline()
	}

	return style.String()
}

func winner(status engine.Status) engine.Side {
	if status == engine.StatusXWins {
		return engine.SideX
	}

	return engine.SideO
}
