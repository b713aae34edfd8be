package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	client := ws.NewClient(c)

	session, err := wsc.gameService.Connect(gameID, playerID, client.Frontend())
	if err != nil {
		log.Warnw("websocket rejected", "gameId", gameID, "playerId", playerID, "error", err)
		_ = client.SendError(err.Error())
		c.Close()
		return
	}
	defer session.Detach(playerID)
	log.Infow("websocket connected", "gameId", gameID, "playerId", playerID)

	input := newInputHandler(session, playerID)
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("websocket closed", "gameId", gameID, "playerId", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			_ = client.SendError("malformed message")
			continue
		}
		if err := input.handle(msg); err != nil {
			_ = client.SendError(err.Error())
		}
	}
}

// inputHandler turns one player's websocket messages into session calls.
type inputHandler struct {
	session  *service.Session
	playerID string
}

func newInputHandler(session *service.Session, playerID string) *inputHandler {
	return &inputHandler{session: session, playerID: playerID}
}

func (h *inputHandler) handle(msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		move, err := payload.Move()
		if err != nil {
			return err
		}
		// the new position reaches this client through the broadcast
		_, err = h.session.MakeMove(h.playerID, move)
		return err

	case ws.MessageTypeSelect:
		var payload ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid select payload: %w", err)
		}
		sq, err := model.ParseSquare(payload.Square)
		if err != nil {
			return err
		}
		return h.session.Select(h.playerID, sq)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
