// service/game_manager.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session is one local game and the player driving both sides of it.
type session struct {
	game     *model.Game
	owner    string
	lastSeen time.Time
}

type GameManager struct {
	games  map[string]*session
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
	mu     sync.RWMutex

	onExpire func(gameID string)
}

func NewGameManager(ttl time.Duration, logger *zap.Logger) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:  make(map[string]*session),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Run sweeps idle sessions every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := gm.sweep(); n > 0 {
				gm.logger.Info("expired idle games", zap.Int("count", n))
			}
		}
	}
}

// OnExpire registers fn to be called with each game the janitor discards.
func (gm *GameManager) OnExpire(fn func(gameID string)) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.onExpire = fn
}

func (gm *GameManager) sweep() int {
	gm.mu.Lock()
	cutoff := gm.now().Add(-gm.ttl)
	var expired []string
	for id, s := range gm.games {
		if s.lastSeen.Before(cutoff) {
			delete(gm.games, id)
			expired = append(expired, id)
		}
	}
	onExpire := gm.onExpire
	gm.mu.Unlock()

	if onExpire != nil {
		for _, id := range expired {
			onExpire(id)
		}
	}
	return len(expired)
}

func (gm *GameManager) CreateGame(owner string) (string, error) {
	gameID := uuid.New().String()

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return "", fmt.Errorf("create %s: %w", gameID, ErrGameExists)
	}
	gm.games[gameID] = &session{
		game:     model.NewGame(),
		owner:    owner,
		lastSeen: gm.now(),
	}
	gm.logger.Debug("game created", zap.String("game_id", gameID), zap.String("player_id", owner))
	return gameID, nil
}

// GetGame returns the game if playerID owns it, refreshing its idle timer.
func (gm *GameManager) GetGame(gameID string, playerID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	if s.owner != playerID {
		return nil, ErrNotOwner
	}
	s.lastSeen = gm.now()
	return s.game, nil
}

func (gm *GameManager) RemoveGame(gameID string, playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, exists := gm.games[gameID]
	if !exists {
		return ErrGameNotFound
	}
	if s.owner != playerID {
		return ErrNotOwner
	}
	delete(gm.games, gameID)
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
