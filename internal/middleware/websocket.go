package middleware

import (
	"github.com/benbeisheim/duelchess/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// GameFinder looks up the state of a running game.
type GameFinder interface {
	GetGameState(gameID string) (model.GameState, error)
}

// WebSocketUpgrade lets a request through to the websocket handler only when
// it is an upgrade for a game that exists and carries a player ID.
func WebSocketUpgrade(games GameFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := utils.CopyString(c.Params("gameId"))
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if _, err := games.GetGameState(gameID); err != nil {
			log.Debugf("refusing websocket for game %s: %v", gameID, err)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Set by EnsurePlayerID.
		playerID, ok := c.Locals("playerID").(string)
		if !ok || playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// The connection context is different from the upgrade context, so
		// carry the IDs across in locals.
		c.Locals("wsGameID", gameID)
		c.Locals("wsPlayerID", playerID)

		return c.Next()
	}
}
