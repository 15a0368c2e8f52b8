package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	NewGame(ctx context.Context, req *entity.NewGameRequest) (*entity.GameView, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameView, error)
	MakeTurn(ctx context.Context, gameID string, x, y int) (*entity.GameView, error)
	RestartGame(ctx context.Context, gameID string, req *entity.NewGameRequest) (*entity.GameView, error)
	DeleteGame(ctx context.Context, gameID string) error
}

// connection holds the per-socket state. Games created on it are dropped when it closes.
type connection struct {
	socket *websocket.Conn
	games  map[string]struct{}
}

type handlerFunc func(ctx context.Context, conn *connection, payload *Payload) (*entity.GameView, error)

type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionTurn] = server.handleGameTurn
	server.handlers[actionGet] = server.handleGetGame
	server.handlers[actionRestart] = server.handleRestartGame

	return server
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	socket, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{
		socket: socket,
		games:  make(map[string]struct{}),
	}

	defer that.closeConnection(ctx, conn)

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.socket.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		reply, err := that.dispatch(ctx, conn, &message)
		if err != nil {
			log.Error("failed to build reply", "action", message.Action, "error", err)
			continue
		}

		if err = conn.socket.WriteJSON(reply); err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}
	}
}

func (that *Server) dispatch(ctx context.Context, conn *connection, message *Message) (*Message, error) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return newReply(actionError, nil, fmt.Errorf("%w: %q", errUnknownAction, message.Action))
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return newReply(message.Action, nil, errInvalidPayload)
		}
	}

	game, err := handler(ctx, conn, &payload)
	if err != nil {
		that.logger.Debug("action rejected", "action", message.Action, "error", err)
	}

	return newReply(message.Action, game, err)
}

func (that *Server) closeConnection(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "closeConnection")

	for gameID := range conn.games {
		if err := that.games.DeleteGame(ctx, gameID); err != nil {
			log.Error("failed to delete game", "gameID", gameID, "error", err)
		}
	}

	if err := conn.socket.Close(); err != nil {
		log.Error("failed to close connection", "error", err)
	}
}
