package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Session is one hosted game: the engine Game, the seated players, the
// recorded plies and the frontends watching it. All access to the Game goes
// through the session mutex. sendMu is taken before mu is released and held
// while rendering, so frontends see snapshots in the order they were made.
type Session struct {
	id string

	mu        sync.Mutex
	sendMu    sync.Mutex
	game      *model.Game
	seats     model.Seats
	history   []model.Ply
	frontends map[string]ws.Frontend
}

func NewSession(id string) *Session {
	return &Session{
		id:        id,
		game:      model.NewGame(),
		frontends: make(map[string]ws.Frontend),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Join seats playerID on the first free side. A player who is already seated
// gets their existing color back.
func (s *Session) Join(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, ok := s.seats.ColorOf(playerID); ok {
		return color, nil
	}
	color, ok := s.seats.Seat(playerID)
	if !ok {
		return "", fmt.Errorf("join %s: %w", s.id, ErrGameFull)
	}
	log.Infow("player joined", "gameId", s.id, "playerId", playerID, "color", color)
	return color, nil
}

// Attach registers a seated player's frontend and renders the current
// position to it. A second attach for the same player replaces the first.
func (s *Session) Attach(playerID string, f ws.Frontend) error {
	s.mu.Lock()
	if _, ok := s.seats.ColorOf(playerID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("attach %s: %w", s.id, ErrNotInGame)
	}
	s.frontends[playerID] = f
	snap := s.snapshotLocked()
	s.sendMu.Lock()
	s.mu.Unlock()

	err := f.Renderer.Render(snap)
	s.sendMu.Unlock()
	if err != nil {
		s.Detach(playerID)
		return fmt.Errorf("initial render: %w", err)
	}
	return nil
}

func (s *Session) Detach(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.frontends, playerID)
}

func (s *Session) Snapshot() ws.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// LegalMoves lists the moves available to the side to move, or only those
// starting on from when it is non-nil.
func (s *Session) LegalMoves(from *model.Square) []model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from != nil {
		return s.game.LegalMovesFrom(*from)
	}
	return s.game.LegalMoves()
}

// MakeMove plays move for playerID and broadcasts the new position.
func (s *Session) MakeMove(playerID string, move model.Move) (ws.Snapshot, error) {
	s.mu.Lock()
	color, ok := s.seats.ColorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return ws.Snapshot{}, fmt.Errorf("move in %s: %w", s.id, ErrNotInGame)
	}
	if color != s.game.SideToMove() {
		s.mu.Unlock()
		return ws.Snapshot{}, fmt.Errorf("move in %s: %w", s.id, ErrNotYourTurn)
	}
	ply, ok := s.game.Play(move)
	if !ok {
		s.mu.Unlock()
		return ws.Snapshot{}, fmt.Errorf("%s: %w", move, ErrIllegalMove)
	}
	s.history = append(s.history, ply)
	snap := s.snapshotLocked()
	frontends := s.frontendsLocked()
	s.sendMu.Lock()
	s.mu.Unlock()
	defer s.sendMu.Unlock()

	log.Debugw("move played", "gameId", s.id, "playerId", playerID, "move", ply.Notation, "status", snap.Status)
	for id, f := range frontends {
		if err := f.Renderer.Render(snap); err != nil {
			log.Warnw("render failed", "gameId", s.id, "playerId", id, "error", err)
		}
	}
	return snap, nil
}

// Select sends the legal destinations of the piece on from to playerID's
// frontend. Frontends without highlight support are skipped.
func (s *Session) Select(playerID string, from model.Square) error {
	s.mu.Lock()
	if _, ok := s.seats.ColorOf(playerID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("select in %s: %w", s.id, ErrNotInGame)
	}
	f, attached := s.frontends[playerID]
	moves := s.game.LegalMovesFrom(from)
	s.mu.Unlock()

	if !attached || !f.CanHighlight() {
		return nil
	}
	targets := make([]model.Square, 0, len(moves))
	for _, m := range moves {
		targets = append(targets, m.To)
	}
	return f.Highlighter.Highlight(from, targets)
}

func (s *Session) frontendsLocked() map[string]ws.Frontend {
	out := make(map[string]ws.Frontend, len(s.frontends))
	for id, f := range s.frontends {
		out[id] = f
	}
	return out
}

func (s *Session) snapshotLocked() ws.Snapshot {
	board := s.game.Board()
	moves := s.game.LegalMoves()
	inCheck := s.game.IsCheck()
	snap := ws.Snapshot{
		GameID:     s.id,
		Ply:        len(s.history),
		Board:      &board,
		ToMove:     s.game.SideToMove(),
		Status:     model.StatusOf(inCheck, len(moves) > 0),
		IsCheck:    inCheck,
		LegalMoves: moves,
		Castling:   s.game.CastlingRights(),
		Players:    s.seats,
		History:    make([]model.Ply, len(s.history)),
		Captured:   ws.CapturedPieces{White: []model.Piece{}, Black: []model.Piece{}},
	}
	copy(snap.History, s.history)
	if last, ok := s.game.LastMove(); ok {
		snap.LastMove = &last
	}
	for _, ply := range s.history {
		if ply.Captured == nil {
			continue
		}
		if ply.Piece.Color == model.White {
			snap.Captured.White = append(snap.Captured.White, *ply.Captured)
		} else {
			snap.Captured.Black = append(snap.Captured.Black, *ply.Captured)
		}
	}
	return snap
}
