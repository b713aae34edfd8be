package ws

import (
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// Conn is the part of a websocket connection a Client writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Client sends session output to one websocket connection. Writes are
// serialised because broadcasts arrive from other players' goroutines.
type Client struct {
	conn Conn
	mu   sync.Mutex
}

func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Frontend exposes the client with both capabilities.
func (c *Client) Frontend() Frontend {
	return Frontend{Renderer: c, Highlighter: c}
}

func (c *Client) Render(s Snapshot) error {
	return c.send(MessageTypeGameState, s)
}

func (c *Client) Highlight(from model.Square, targets []model.Square) error {
	payload := HighlightsPayload{From: from.String(), Targets: make([]string, 0, len(targets))}
	for _, sq := range targets {
		payload.Targets = append(payload.Targets, sq.String())
	}
	return c.send(MessageTypeHighlights, payload)
}

func (c *Client) SendError(msg string) error {
	return c.send(MessageTypeError, ErrorPayload{Message: msg})
}

func (c *Client) send(t MessageType, payload interface{}) error {
	msg, err := NewMessage(t, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}
