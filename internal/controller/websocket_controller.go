package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/duelchess/internal/service"
	"github.com/benbeisheim/duelchess/internal/ws"
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
	// Set by middleware.WebSocketUpgrade before the upgrade.
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection for player %s in game %s: %v", playerID, gameID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error for player %s: %v", playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			wsc.sendError(gameID, playerID, "message must be JSON")
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("handle error: %v", err)
			wsc.sendError(gameID, playerID, err.Error())
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var text string
		if err := json.Unmarshal(msg.Payload, &text); err != nil {
			return fmt.Errorf("move payload must be a string such as \"e2 e4\": %w", err)
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, text)
		return err

	case ws.MessageTypeQuit:
		return wsc.gameService.HandleQuit(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, playerID, text string) {
	if err := wsc.gameService.SendError(gameID, playerID, text); err != nil {
		log.Warnf("failed to send error to player %s: %v", playerID, err)
	}
}
