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
	"github.com/nimplay/nim-backend/internal/service"
)

var ErrUnknownAction = errors.New("unknown action")

// SessionFactory builds the per-connection session controller; every client
// plays its own game, so each connection gets its own service wired to a
// listener that writes back into this connection.
type SessionFactory func(listener service.Listener) service.SessionService

type Server struct {
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	newSession SessionFactory
}

func New(logger *slog.Logger, newSession SessionFactory) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the game is embedded in blog pages served from another origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
		newSession: newSession,
	}
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
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

func (that *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("connection established")

	client := &client{conn: conn, logger: log}
	session := that.newSession(client)
	defer session.Close()

	that.readLoop(r.Context(), client, session)

	log.Info("connection closed")
}

// readLoop - processes messages from the client until the connection drops.
func (that *Server) readLoop(ctx context.Context, client *client, session service.SessionService) {
	for {
		var message Message
		if err := client.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				client.logger.Error("error reading message", "error", err)
			}
			return
		}

		if err := that.handleMessage(ctx, client, session, &message); err != nil {
			client.logger.Error("error processing message", "action", message.Action, "error", err)
			client.sendError(message.Action, err)
		}
	}
}

// client serializes writes to one connection; gorilla allows a single
// concurrent writer and the deferred opponent reply writes from a timer
// goroutine.
type client struct {
	logger *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func (that *client) send(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendError(action string, err error) {
	if sendErr := that.send(ActionError, ErrorPayload{Action: action, Message: err.Error()}); sendErr != nil {
		that.logger.Error("failed to send error", "error", sendErr)
	}
}
