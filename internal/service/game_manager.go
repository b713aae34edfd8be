// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// MatchFound tells a queued player which session they were paired into.
type MatchFound struct {
	GameID string      `json:"game_id"`
	Color  model.Color `json:"color"`
}

type GameManager struct {
	sessions         map[string]*Session
	queue            *model.Queue
	matchingChannels map[string]chan MatchFound
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		sessions:         make(map[string]*Session),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan MatchFound),
	}
}

// CreateSession registers a new session under a fresh uuid.
func (gm *GameManager) CreateSession() (*Session, error) {
	return gm.CreateSessionWithID(uuid.New().String())
}

func (gm *GameManager) CreateSessionWithID(gameID string) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return nil, fmt.Errorf("create %s: %w", gameID, ErrGameExists)
	}
	s := NewSession(gameID)
	gm.sessions[gameID] = s
	log.Infow("game created", "gameId", gameID)
	return s, nil
}

func (gm *GameManager) Session(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.sessions[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}
	return s, nil
}

// RemoveSession drops a session from the registry. Frontends still holding
// it keep working until they disconnect.
func (gm *GameManager) RemoveSession(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.sessions, gameID)
}

// JoinMatchmaking queues playerID and returns the channel its match will be
// delivered on. The channel is buffered so the matchmaker never blocks.
// Callers release it with LeaveMatchmaking once they are done waiting.
func (gm *GameManager) JoinMatchmaking(playerID string) (<-chan MatchFound, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, waiting := gm.matchingChannels[playerID]; waiting {
		return nil, fmt.Errorf("%s: %w", playerID, ErrAlreadyQueued)
	}
	if err := gm.queue.Add(playerID); err != nil {
		if errors.Is(err, model.ErrAlreadyQueued) {
			return nil, fmt.Errorf("%s: %w", playerID, ErrAlreadyQueued)
		}
		return nil, err
	}
	ch := make(chan MatchFound, 1)
	gm.matchingChannels[playerID] = ch
	log.Debugw("player queued", "playerId", playerID, "queueSize", gm.queue.Size())
	return ch, nil
}

// LeaveMatchmaking takes playerID out of the queue. If a match was made in
// the meantime it is returned instead.
func (gm *GameManager) LeaveMatchmaking(playerID string) (MatchFound, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.queue.Remove(playerID)
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return MatchFound{}, false
	}
	delete(gm.matchingChannels, playerID)
	select {
	case m := <-ch:
		return m, true
	default:
		return MatchFound{}, false
	}
}

// Run pairs queued players every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("matchmaking stopped")
			return
		case <-ticker.C:
			for gm.matchOnce() {
			}
		}
	}
}

// matchOnce seats the two longest-waiting players in a new session and
// notifies them. It reports whether a pair was made.
func (gm *GameManager) matchOnce() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	first, second, ok := gm.queue.NextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	s := NewSession(gameID)
	gm.sessions[gameID] = s

	for _, p := range []model.QueuedPlayer{first, second} {
		color, err := s.Join(p.PlayerID)
		if err != nil {
			log.Errorw("seating matched player", "gameId", gameID, "playerId", p.PlayerID, "error", err)
			continue
		}
		// the channel stays registered until LeaveMatchmaking so a waiter
		// that has already timed out can still collect the match
		if ch, ok := gm.matchingChannels[p.PlayerID]; ok {
			ch <- MatchFound{GameID: gameID, Color: color}
		}
	}
	log.Infow("match made", "gameId", gameID, "white", first.PlayerID, "black", second.PlayerID)
	return true
}
