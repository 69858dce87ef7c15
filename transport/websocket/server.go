package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/memorize-backend/internal/entity"
)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameUseCase interface {
	NewGame(ctx context.Context, themeName string) (entity.Snapshot[string], error)
	GetSnapshot(ctx context.Context, sessionID string) (entity.Snapshot[string], error)

	Choose(ctx context.Context, sessionID string, cardID int) (entity.Snapshot[string], error)
	Shuffle(ctx context.Context, sessionID string) (entity.Snapshot[string], error)
	Restart(ctx context.Context, sessionID string) (entity.Snapshot[string], error)

	EndGame(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, conn *connection, req *Request) (entity.Snapshot[string], error)

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

// connection is one player's socket. gorilla/websocket allows a single concurrent writer.
type connection struct {
	ws        *websocket.Conn
	writeMu   sync.Mutex
	sessionID string
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionNew] = server.handleNewGame
	server.handlers[ActionChoose] = server.handleChoose
	server.handlers[ActionShuffle] = server.handleShuffle
	server.handlers[ActionRestart] = server.handleRestart
	server.handlers[ActionState] = server.handleState

	return server
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
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
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWebSocket - upgrades the connection and serves one player until it closes.
func (that *Server) serveWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWebSocket")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{ws: ws}
	defer func() {
		that.handleDisconnect(ctx, conn)
		_ = ws.Close()
	}()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(conn, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(conn, fmt.Sprintf("unknown action %q", message.Action))
			continue
		}

		var req Request
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &req); err != nil {
				log.Warn("failed to unmarshal payload", "action", message.Action, "error", err)
				that.sendError(conn, "malformed payload")
				continue
			}
		}

		snapshot, err := handler(ctx, conn, &req)
		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.sendError(conn, err.Error())
			continue
		}

		if err = that.sendMessage(conn, ActionState, Response{Game: &snapshot}); err != nil {
			return err
		}
	}
}

func (that *Server) sendError(conn *connection, errorMsg string) {
	if err := that.sendMessage(conn, ActionError, Response{Error: errorMsg}); err != nil {
		that.logger.Error("failed to send error response", "error", err)
	}
}

func (that *Server) sendMessage(conn *connection, action string, payload Response) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	conn.writeMu.Lock()
	defer conn.writeMu.Unlock()

	if err = conn.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.ws.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
