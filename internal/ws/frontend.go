package ws

import "github.com/benbeisheim/chess-backend/internal/model"

// Renderer draws a session snapshot. Every frontend must provide one.
type Renderer interface {
	Render(Snapshot) error
}

// Highlighter shows the legal destinations of a selected piece.
type Highlighter interface {
	Highlight(from model.Square, targets []model.Square) error
}

// Frontend is the set of presentation capabilities attached to a session.
// A nil Highlighter means the frontend cannot show highlights.
type Frontend struct {
	Renderer    Renderer
	Highlighter Highlighter
}

func (f Frontend) CanHighlight() bool {
	return f.Highlighter != nil
}
