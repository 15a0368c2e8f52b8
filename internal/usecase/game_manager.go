package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// gameSession owns one engine.Game. The engine is single-threaded, so every
// call into it goes through mu.
type gameSession struct {
	mu     sync.Mutex
	id     string
	game   *engine.Game
	logger *slog.Logger

	lastStatus engine.Status
}

func (that *gameSession) onStatusChanged(status engine.Status) {
	if status != that.lastStatus {
		that.logger.Info("game status changed", "from", that.lastStatus.String(), "to", status.String())
	}

	that.lastStatus = status
}

func (that *gameSession) view() *entity.GameView {
	return entity.NewGameView(that.id, that.game)
}

type Option func(*GameManager)

// WithEasyModeDefault sets the difficulty used when a request does not pick one.
func WithEasyModeDefault(easy bool) Option {
	return func(manager *GameManager) {
		manager.defaultEasy = easy
	}
}

// WithMaxSessions caps the number of games kept in memory; 0 means no limit.
func WithMaxSessions(limit int) Option {
	return func(manager *GameManager) {
		manager.maxSessions = limit
	}
}

// WithSeed derives each game's random source from seed, so runs are reproducible.
// A zero seed keeps the time-seeded default.
func WithSeed(seed int64) Option {
	return func(manager *GameManager) {
		if seed == 0 {
			return
		}

		var created int64
		manager.newRand = func() engine.Rand {
			created++
			return engine.NewRand(seed + created)
		}
	}
}

// WithRandSource replaces the per-game random source factory.
func WithRandSource(newRand func() engine.Rand) Option {
	return func(manager *GameManager) {
		manager.newRand = newRand
	}
}

// GameManager keeps the in-memory games and turns caller mistakes into errors
// before they reach the engine.
type GameManager struct {
	logger *slog.Logger

	defaultEasy bool
	maxSessions int
	newRand     func() engine.Rand

	mu       sync.RWMutex
	sessions map[string]*gameSession
}

func NewGameManager(logger *slog.Logger, opts ...Option) *GameManager {
	manager := &GameManager{
		logger:   logger.With("component", "game_manager"),
		newRand:  func() engine.Rand { return engine.NewRand(0) },
		sessions: make(map[string]*gameSession),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

func (that *GameManager) NewGame(ctx context.Context, req *entity.NewGameRequest) (*entity.GameView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game request: %w", err)
	}

	session, err := that.createSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	that.start(session, req)

	session.logger.Info("game created", "difficulty", session.game.Difficulty().String())

	return session.view(), nil
}

func (that *GameManager) RestartGame(ctx context.Context, gameID string, req *entity.NewGameRequest) (*entity.GameView, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game request: %w", err)
	}

	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	that.start(session, req)

	session.logger.Info("game restarted")

	return session.view(), nil
}

func (that *GameManager) MakeTurn(ctx context.Context, gameID string, x, y int) (*entity.GameView, error) {
	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err = validateTurn(session.game, x, y); err != nil {
		return session.view(), fmt.Errorf("invalid turn: %w", err)
	}

	session.game.HumanMove(uint8(x), uint8(y))

	session.logger.Debug("turn played", "x", x, "y", y, "moves", session.game.Moves())

	return session.view(), nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.GameView, error) {
	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	return session.view(), nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[gameID]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	delete(that.sessions, gameID)

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// ActiveGames returns the number of games kept in memory.
func (that *GameManager) ActiveGames() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

func (that *GameManager) createSession() (*gameSession, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.maxSessions > 0 && len(that.sessions) >= that.maxSessions {
		return nil, apperror.ErrTooManyGames
	}

	id := uuid.NewString()
	session := &gameSession{
		id:     id,
		game:   engine.NewGame(engine.WithRand(that.newRand())),
		logger: that.logger.With("gameID", id),
	}

	that.sessions[id] = session

	return session, nil
}

func (that *GameManager) getSession(ctx context.Context, gameID string) (*gameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	return session, nil
}

// start runs engine.Start on a validated request. The caller holds session.mu.
func (that *GameManager) start(session *gameSession, req *entity.NewGameRequest) {
	side, _ := req.Side()
	first, _ := req.First()

	easy := that.defaultEasy
	if req.EasyMode != nil {
		easy = *req.EasyMode
	}

	session.lastStatus = engine.StatusNotStarted
	session.game.Start(side, first, session.onStatusChanged, easy)
}

// validateTurn checks everything HumanMove would otherwise panic on.
func validateTurn(game *engine.Game, x, y int) error {
	status := game.Status()

	switch {
	case status == engine.StatusNotStarted:
		return apperror.ErrGameIsNotStarted
	case status.IsFinished():
		return apperror.ErrGameFinished
	case game.CurrentPlayer() != engine.Human:
		return apperror.ErrNotYourTurn
	case x < 0 || x >= engine.BoardSize || y < 0 || y >= engine.BoardSize:
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, x, y)
	case !game.GetCell(uint8(x), uint8(y)).IsEmpty():
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	return nil
}
