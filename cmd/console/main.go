package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	side  = flag.String("side", entity.SideX, "Side played by the human: X or O")
	first = flag.String("first", entity.FirstHuman, "Who moves first: human or computer")
	easy  = flag.Bool("easy", false, "Play against the easy policy")
	seed  = flag.Int64("seed", 0, "Seed for the computer's opening, 0 seeds from the clock")
)

// main - plays a single game in the terminal. Settings come from the environment, flags override them.
func main() {
	flag.Parse()

	conf, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: conf.SlogLevel()}))

	req := &entity.NewGameRequest{HumanSide: *side, FirstPlayer: *first}
	if err = req.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	humanSide, _ := req.Side()
	firstPlayer, _ := req.First()

	gameSeed := conf.Game.Seed
	if *seed != 0 {
		gameSeed = *seed
	}

	player := console.NewPlayer(logger, console.NewRenderer(os.Stdout), os.Stdin)
	game := engine.NewGame(engine.WithRand(engine.NewRand(gameSeed)))

	if _, err = player.Play(context.Background(), game, humanSide, firstPlayer, *easy || conf.Game.EasyMode); err != nil {
		if errors.Is(err, console.ErrInputClosed) {
			fmt.Fprintln(os.Stdout)
			return
		}

		logger.Error("game aborted", "error", err)
		os.Exit(1)
	}
}
