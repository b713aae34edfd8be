package ws

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeSelect     MessageType = "select"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeHighlights MessageType = "highlights"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is a move intent in coordinate form. Promotion may be a piece
// name ("knight") or letter ("n"); empty means queen when it matters.
type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Move converts the payload to an engine move.
func (p MovePayload) Move() (model.Move, error) {
	from, err := model.ParseSquare(p.From)
	if err != nil {
		return model.Move{}, fmt.Errorf("from: %w", err)
	}
	to, err := model.ParseSquare(p.To)
	if err != nil {
		return model.Move{}, fmt.Errorf("to: %w", err)
	}
	promo, err := parsePromotion(p.Promotion)
	if err != nil {
		return model.Move{}, err
	}
	return model.Move{From: from, To: to, Promotion: promo}, nil
}

func parsePromotion(s string) (model.PieceType, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "q", "queen":
		return model.Queen, nil
	case "r", "rook":
		return model.Rook, nil
	case "b", "bishop":
		return model.Bishop, nil
	case "n", "knight":
		return model.Knight, nil
	}
	return "", fmt.Errorf("invalid promotion piece %q", s)
}

// SelectPayload asks for the legal destinations of the piece on Square.
type SelectPayload struct {
	Square string `json:"square"`
}

type HighlightsPayload struct {
	From    string   `json:"from"`
	Targets []string `json:"targets"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Snapshot is the view of a session pushed to frontends after every change.
// Ply counts the moves played so far.
type Snapshot struct {
	GameID     string               `json:"gameId"`
	Ply        int                  `json:"ply"`
	Board      *model.Board         `json:"board"`
	ToMove     model.Color          `json:"toMove"`
	Status     model.Status         `json:"status"`
	IsCheck    bool                 `json:"isCheck"`
	LastMove   *model.Move          `json:"lastMove"`
	LegalMoves []model.Move         `json:"legalMoves"`
	Castling   model.CastlingRights `json:"castling"`
	Players    model.Seats          `json:"players"`
	History    []model.Ply          `json:"history"`
	Captured   CapturedPieces       `json:"captured"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []model.Piece `json:"white"`
	Black []model.Piece `json:"black"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: raw}, nil
}
