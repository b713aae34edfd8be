package service

import (
	"context"
	"fmt"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
	waitTimeout time.Duration
}

// NewGameService wraps gameManager. waitTimeout bounds how long a
// matchmaking request waits for an opponent.
func NewGameService(gameManager *GameManager, waitTimeout time.Duration) *GameService {
	return &GameService{
		gameManager: gameManager,
		waitTimeout: waitTimeout,
	}
}

// CreateGame opens a session and seats its creator as White.
func (gs *GameService) CreateGame(playerID string) (string, model.Color, error) {
	s, err := gs.gameManager.CreateSession()
	if err != nil {
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}
	color, err := s.Join(playerID)
	if err != nil {
		return "", "", err
	}
	return s.ID(), color, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	s, err := gs.gameManager.Session(gameID)
	if err != nil {
		return "", err
	}
	return s.Join(playerID)
}

// JoinMatchmaking queues playerID and waits for an opponent. It returns
// false if nothing was found before the wait timeout; the player is then no
// longer queued and may ask again.
func (gs *GameService) JoinMatchmaking(ctx context.Context, playerID string) (MatchFound, bool, error) {
	ch, err := gs.gameManager.JoinMatchmaking(playerID)
	if err != nil {
		return MatchFound{}, false, err
	}

	timer := time.NewTimer(gs.waitTimeout)
	defer timer.Stop()

	select {
	case m := <-ch:
		gs.gameManager.LeaveMatchmaking(playerID)
		return m, true, nil
	case <-timer.C:
	case <-ctx.Done():
	}
	m, ok := gs.gameManager.LeaveMatchmaking(playerID)
	return m, ok, nil
}

func (gs *GameService) GetSnapshot(gameID string) (ws.Snapshot, error) {
	s, err := gs.gameManager.Session(gameID)
	if err != nil {
		return ws.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// LegalMoves lists the legal moves in gameID, optionally only those from
// the given square.
func (gs *GameService) LegalMoves(gameID string, from *model.Square) ([]model.Move, error) {
	s, err := gs.gameManager.Session(gameID)
	if err != nil {
		return nil, err
	}
	return s.LegalMoves(from), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) (ws.Snapshot, error) {
	s, err := gs.gameManager.Session(gameID)
	if err != nil {
		return ws.Snapshot{}, err
	}
	return s.MakeMove(playerID, move)
}

// Connect attaches a frontend to gameID and returns the session it should
// drive.
func (gs *GameService) Connect(gameID string, playerID string, f ws.Frontend) (*Session, error) {
	s, err := gs.gameManager.Session(gameID)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(playerID, f); err != nil {
		return nil, err
	}
	return s, nil
}
