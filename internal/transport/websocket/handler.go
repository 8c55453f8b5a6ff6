package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Subscriber streams the events of a game hosted by any server instance.
type Subscriber interface {
	Subscribe(ctx context.Context, gameID string) (<-chan domain.ServerMessage, error)
}

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Signer         *auth.Signer
	Upgrader       websocket.Upgrader
	// Relay, when set, serves games this instance does not hold by
	// forwarding their event channel. Such sockets are read-only.
	Relay Subscriber
}

// NewHandler creates a new WebSocket handler. checkOrigin may be nil to accept any origin.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, signer *auth.Signer, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Signer:         signer,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket authorises the game token before upgrading the connection.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Query("gameId")
	session, exists := h.SessionManager.GetSessionByGameID(gameID)
	if !exists && h.Relay == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrGameNotFound.Error()})
		return
	}

	token, err := httputil.GetTokenFromRequest(c.Request)
	if err == nil {
		err = h.Signer.Authorize(token, gameID)
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid game token"})
		return
	}

	if !exists {
		h.handleRelay(c, gameID)
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(c.Request.Context(), session, conn)
}

// handleRelay attaches a render client to a game held by another instance.
// The subscription is confirmed before the upgrade so no event is lost.
func (h *Handler) handleRelay(c *gin.Context, gameID string) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	messages, err := h.Relay.Subscribe(ctx, gameID)
	if err != nil {
		log.Printf("[WS] Relay subscribe for game %s failed: %v", gameID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event relay unavailable"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	relayed := &client{conn: conn}
	log.Printf("[WS] Relay client attached to game %s", gameID)
	defer log.Printf("[WS] Relay client detached from game %s", gameID)

	done := make(chan struct{})
	defer close(done)
	keepAlive(conn, done)

	// The subscription ending (ctx or Redis gone) also ends the socket.
	go func() {
		defer conn.Close()
		for msg := range messages {
			if err := relayed.write(msg); err != nil {
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if err := relayed.write(domain.ErrorMessage(gameID, "game is hosted on another server, this connection only relays events")); err != nil {
			return
		}
	}
}

// keepAlive extends the read deadline on every pong and pings until done closes.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, session *game.GameSession, conn *websocket.Conn) {
	gameID := session.GameID

	h.ConnManager.AddConnection(gameID, conn)
	log.Printf("[WS] Render client attached to game %s", gameID)

	done := make(chan struct{})
	defer func() {
		close(done)
		log.Printf("[WS] Render client detached from game %s", gameID)
		h.ConnManager.RemoveConnection(gameID, conn)
	}()

	keepAlive(conn, done)

	h.ConnManager.SendMessage(gameID, conn, domain.StateMessage(session.State()))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client on game %s disconnected unexpectedly: %v", gameID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendMessage(gameID, conn, domain.ErrorMessage(gameID, "invalid message"))
			continue
		}

		h.processMessage(ctx, session, conn, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, session *game.GameSession, conn *websocket.Conn, msg domain.ClientMessage) {
	gameID := session.GameID

	switch msg.Type {
	case domain.MessageSelectColumn:
		// Events reach this socket through the ConnectionManager publisher.
		_, _, err := session.HandleMove(ctx, msg.Column)
		if errors.Is(err, domain.ErrInvalidColumn) {
			h.ConnManager.SendMessage(gameID, conn, domain.ErrorMessage(gameID, err.Error()))
		} else if err != nil {
			log.Printf("[WS] Move on game %s failed: %v", gameID, err)
			h.ConnManager.SendMessage(gameID, conn, domain.ErrorMessage(gameID, "move failed"))
		}

	case domain.MessageGetState:
		h.ConnManager.SendMessage(gameID, conn, domain.StateMessage(session.State()))

	default:
		h.ConnManager.SendMessage(gameID, conn, domain.ErrorMessage(gameID, "unknown message type"))
	}
}
