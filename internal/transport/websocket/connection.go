package websocket

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
)

const writeWait = 10 * time.Second

type client struct {
	conn *websocket.Conn
	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func (c *client) write(message domain.ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

// ConnectionManager tracks the render-layer sockets attached to each game.
type ConnectionManager struct {
	games map[string]map[*websocket.Conn]*client
	mu    sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		games: make(map[string]map[*websocket.Conn]*client),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.games[gameID] == nil {
		cm.games[gameID] = make(map[*websocket.Conn]*client)
	}
	cm.games[gameID][conn] = &client{conn: conn}
}

func (cm *ConnectionManager) RemoveConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	clients, exists := cm.games[gameID]
	if !exists {
		return
	}
	if _, ok := clients[conn]; ok {
		conn.Close()
		delete(clients, conn)
	}
	if len(clients) == 0 {
		delete(cm.games, gameID)
	}
}

// CloseGame disconnects every socket attached to gameID.
func (cm *ConnectionManager) CloseGame(gameID string) {
	cm.mu.Lock()
	clients := cm.games[gameID]
	delete(cm.games, gameID)
	cm.mu.Unlock()

	for conn, c := range clients {
		c.writeMu.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game expired"),
			time.Now().Add(time.Second))
		conn.Close()
		c.writeMu.Unlock()
	}
	if len(clients) > 0 {
		log.Printf("[WS] Closed %d connections for expired game %s", len(clients), gameID)
	}
}

func (cm *ConnectionManager) ConnectionCount(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.games[gameID])
}

// Publish sends the message to every socket on the game. A socket that
// cannot be written is dropped.
func (cm *ConnectionManager) Publish(_ context.Context, gameID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	targets := make([]*client, 0, len(cm.games[gameID]))
	for _, c := range cm.games[gameID] {
		targets = append(targets, c)
	}
	cm.mu.RUnlock()

	var errs []error
	for _, c := range targets {
		if err := c.write(message); err != nil {
			errs = append(errs, err)
			cm.RemoveConnection(gameID, c.conn)
		}
	}
	return errors.Join(errs...)
}

// SendMessage writes to a single socket.
func (cm *ConnectionManager) SendMessage(gameID string, conn *websocket.Conn, message domain.ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.games[gameID][conn]
	cm.mu.RUnlock()

	if !exists {
		return nil // already disconnected
	}
	return c.write(message)
}
