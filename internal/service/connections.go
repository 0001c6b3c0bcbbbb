package service

import (
	"sync"

	"github.com/benbeisheim/chess-backend/internal/ws"
)

// StateWriter is the write side of a websocket connection.
type StateWriter interface {
	WriteJSON(v interface{}) error
}

// connection serializes writes; a websocket allows one writer at a time.
type connection struct {
	mu sync.Mutex
	w  StateWriter
}

// GameConnections holds the owner's socket per game.
type GameConnections struct {
	connections map[string]*connection // gameID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*connection),
	}
}

func (gc *GameConnections) Register(gameID string, w StateWriter) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.connections[gameID]; exists {
		return ErrConnectionExists
	}
	gc.connections[gameID] = &connection{w: w}
	return nil
}

// Unregister drops the game's socket only if it is still w.
func (gc *GameConnections) Unregister(gameID string, w StateWriter) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if c, exists := gc.connections[gameID]; exists && c.w == w {
		delete(gc.connections, gameID)
	}
}

// Send writes msg to the game's socket. No socket is not an error.
func (gc *GameConnections) Send(gameID string, msg ws.Message) error {
	gc.mu.RLock()
	c, exists := gc.connections[gameID]
	gc.mu.RUnlock()
	if !exists {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.WriteJSON(msg)
}

func (gc *GameConnections) Drop(gameID string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	delete(gc.connections, gameID)
}
