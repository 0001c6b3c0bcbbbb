package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const playerIDKey = "playerID"

// EnsurePlayerID reads the caller's player ID from the X-Player-ID header or
// the playerId query parameter and stores it in the request locals.
func EnsurePlayerID(logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			// browsers cannot set headers on a websocket handshake
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			logger.Debug("request without player ID", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(playerIDKey, playerID)
		return c.Next()
	}
}

// PlayerID returns the ID stored by EnsurePlayerID, or "" if none.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(playerIDKey).(string)
	return id
}
